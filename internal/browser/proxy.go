package browser

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
)

// Proxy is a single upstream proxy entry parsed from BLAKE_PROXIES.
type Proxy struct {
	Host     string
	Port     string
	Username string
	Password string
}

// Server returns the "host:port" form used by the selenium Proxy capability.
func (p Proxy) Server() string {
	return p.Host + ":" + p.Port
}

// LoadProxiesFromEnv parses BLAKE_PROXIES ("host:port:user:pass" comma list),
// grounded on original_source/proxy_manager.py::load_proxy_config.
func LoadProxiesFromEnv() []Proxy {
	raw := strings.TrimSpace(os.Getenv("BLAKE_PROXIES"))
	if raw == "" {
		log.Println("browser: no proxies configured, scraper batches will use a direct connection")
		return nil
	}

	var proxies []Proxy
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		parts := strings.Split(entry, ":")
		if len(parts) < 2 {
			continue
		}
		p := Proxy{Host: parts[0], Port: parts[1]}
		if len(parts) >= 4 {
			p.Username = parts[2]
			p.Password = parts[3]
		}
		proxies = append(proxies, p)
	}
	log.Printf("browser: loaded %d proxies from environment", len(proxies))
	return proxies
}

// WithSession returns a copy of p whose password embeds a fresh, unique
// session identifier, so that upstream proxy sessions for distinct batches
// stay disjoint. Grounded on get_proxy_for_zabasearch's "_session-<id>"
// password rewrite.
func (p Proxy) WithSession(sessionID string) Proxy {
	if p.Password == "" {
		return p
	}
	base := p.Password
	if idx := strings.Index(base, "_session-"); idx >= 0 {
		base = base[:idx]
	}
	out := p
	out.Password = fmt.Sprintf("%s_session-%s", base, sessionID)
	return out
}

// RandomProxy picks a uniformly random proxy from the pool, or the zero
// value with ok=false when none are configured.
func RandomProxy(pool []Proxy) (Proxy, bool) {
	if len(pool) == 0 {
		return Proxy{}, false
	}
	return pool[rand.Intn(len(pool))], true
}
