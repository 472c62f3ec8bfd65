package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultInferenceURL = "https://openrouter.ai/api/v1/chat/completions"
const defaultModel = "google/gemini-2.5-flash"

// Client talks to a remote JSON chat-completion endpoint to infer a
// Formula from a sample of a file's rows. Grounded on the plain net/http +
// encoding/json LLM client pattern (no SDK appears anywhere in the
// retrieved pack).
type Client struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// NewClient builds a Client. apiKey comes from the caller's environment
// (cmd/enrichctl reads os.Getenv("LLM_API_KEY")); an empty key means the client
// always fails fast into the heuristic fallback.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		url:    defaultInferenceURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Infer issues a single remote call describing the file's columns and a
// sample of rows, and parses the response into a Formula. Callers should
// treat any returned error as "fall back to the heuristic" -- this call must
// never block the pipeline (§4.4 failure model).
func (c *Client) Infer(ctx context.Context, columns []string, sampleRowsJSON string, recordCount int) (*Formula, error) {
	if c == nil || c.apiKey == "" {
		return nil, fmt.Errorf("inference: no API key configured")
	}

	prompt := buildPrompt(columns, sampleRowsJSON, recordCount)
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("inference: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("inference: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("inference: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("inference: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("inference: empty response")
	}

	return parseFormulaJSON(parsed.Choices[0].Message.Content)
}

func buildPrompt(columns []string, sampleRowsJSON string, recordCount int) string {
	var b strings.Builder
	b.WriteString("You are mapping a real-estate lead list's columns to a fixed schema.\n")
	b.WriteString("Columns: ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(fmt.Sprintf("\nTotal records: %d\n", recordCount))
	b.WriteString("Sample rows (JSON):\n")
	b.WriteString(sampleRowsJSON)
	b.WriteString("\nReturn ONLY a JSON object with fields: format_type " +
		"(separated_components|combined_address|positional|mixed|unknown), " +
		"column_map (object mapping primary_name, house_number, prefix_direction, " +
		"street_name, street_type, post_direction, unit, combined_address, city, " +
		"state, zip, existing_phones to source column names), " +
		"address_method (separated_components|parse_combined), " +
		"confidence (high|medium|low), validation_notes (string).\n")
	return b.String()
}

type formulaJSON struct {
	FormatType      string            `json:"format_type"`
	ColumnMap       map[string]string `json:"column_map"`
	AddressMethod   string            `json:"address_method"`
	Confidence      string            `json:"confidence"`
	ValidationNotes string            `json:"validation_notes"`
}

func parseFormulaJSON(content string) (*Formula, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("inference: no JSON object in response")
	}

	var parsed formulaJSON
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("inference: parse formula JSON: %w", err)
	}

	columnMap := make(map[SemanticField]string, len(parsed.ColumnMap))
	for k, v := range parsed.ColumnMap {
		if v == "" {
			continue
		}
		columnMap[SemanticField(k)] = v
	}

	return &Formula{
		FormatType:      FormatType(parsed.FormatType),
		ColumnMap:       columnMap,
		AddressMethod:   AddressMethod(parsed.AddressMethod),
		Confidence:      Confidence(parsed.Confidence),
		ValidationNotes: parsed.ValidationNotes,
	}, nil
}
