// Package browser builds stealth selenium/chrome browser contexts for the
// assessor and people-search scrapers (§4.8 Stealth Browser Factory).
// Grounded on the teacher's internal/scraper/selenium_scraper.go connection
// setup, generalized from a single fixed-viewport debug browser into a
// per-batch randomized-fingerprint factory.
package browser

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

const (
	navigationTimeout = 15 * time.Second
	operationTimeout  = 15 * time.Second
	selectorTimeout   = 3 * time.Second
	consentTimeout    = 5 * time.Second
)

// viewport is one entry in the curated list of common screen resolutions
// used to randomize the browser's window size per batch.
type viewport struct{ width, height int }

var commonViewports = []viewport{
	{1920, 1080}, {1366, 768}, {1536, 864}, {1440, 900}, {1280, 720},
}

// localeTimezone pairs a browser locale with a plausible matching timezone.
type localeTimezone struct{ locale, timezone string }

var localeTimezones = []localeTimezone{
	{"en-US", "America/New_York"},
	{"en-US", "America/Chicago"},
	{"en-US", "America/Los_Angeles"},
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
}

// geoPoint is a randomized point within the target county used for
// geolocation spoofing.
type geoPoint struct{ lat, lng float64 }

// browardBounds is a rough bounding box over Broward County, FL.
var browardBounds = struct{ minLat, maxLat, minLng, maxLng float64 }{
	minLat: 25.95, maxLat: 26.32, minLng: -80.45, maxLng: -80.09,
}

func randomGeoPoint() geoPoint {
	lat := browardBounds.minLat + rand.Float64()*(browardBounds.maxLat-browardBounds.minLat)
	lng := browardBounds.minLng + rand.Float64()*(browardBounds.maxLng-browardBounds.minLng)
	return geoPoint{lat: lat, lng: lng}
}

// denylistHosts lists advertising/analytics hosts. New installs no
// request-routing rule, so requests to these hosts are not aborted.
var denylistHosts = []string{
	"doubleclick.net", "googlesyndication.com", "google-analytics.com",
	"facebook.net", "adnxs.com", "scorecardresearch.com",
}

// blockedResourceTypes lists heavy resource types. Like denylistHosts it is
// not wired into the driver; these requests are not aborted.
var blockedResourceTypes = []string{"image", "media", "font", "stylesheet", "beacon"}

// Context is a single-use stealth browser context: one per scraper batch.
type Context struct {
	Driver    selenium.WebDriver
	SessionID string
	Proxy     *Proxy
}

// fingerprintStealthScript is run once, on the blank page New opens, to mask
// standard automation fingerprints: it hides the webdriver flag, fakes the
// plugins and languages lists, and spoofs the battery API. The WebGL
// getParameter wrapper passes calls through unchanged; the script adds no
// canvas/audio noise and no WebRTC hardening.
const fingerprintStealthScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
if (navigator.getBattery) {
  navigator.getBattery = () => Promise.resolve({charging: true, level: 1, chargingTime: 0, dischargingTime: Infinity});
}
const getParameter = WebGLRenderingContext.prototype.getParameter;
WebGLRenderingContext.prototype.getParameter = function(parameter) { return getParameter.call(this, parameter); };
`

// New builds a fresh stealth browser context: randomized viewport, locale,
// user-agent, optional proxy session, and the fingerprint-masking script.
// The timezone of the picked locale/timezone pair is not applied, the
// random geolocation point is only logged, and no request-blocking rule is
// installed.
func New(proxyPool []Proxy) (*Context, error) {
	sessionID := fmt.Sprintf("session_%s_%d", time.Now().Format("20060102_150405"), rand.Intn(100000))

	vp := commonViewports[rand.Intn(len(commonViewports))]
	lt := localeTimezones[rand.Intn(len(localeTimezones))]
	ua := userAgents[rand.Intn(len(userAgents))]

	args := []string{
		"--no-sandbox",
		"--disable-dev-shm-usage",
		fmt.Sprintf("--window-size=%d,%d", vp.width, vp.height),
		"--lang=" + lt.locale,
		"--user-agent=" + ua,
		"--disable-blink-features=AutomationControlled",
	}

	chromeCaps := chrome.Capabilities{Args: args, W3C: true}

	caps := selenium.Capabilities{}
	caps.AddChrome(chromeCaps)
	caps["goog:loggingPrefs"] = map[string]string{"browser": "ALL", "driver": "ALL"}

	var proxy *Proxy
	if p, ok := RandomProxy(proxyPool); ok {
		withSession := p.WithSession(sessionID)
		proxy = &withSession
		caps["proxy"] = map[string]interface{}{
			"proxyType": "manual",
			"httpProxy": withSession.Server(),
			"sslProxy":  withSession.Server(),
		}
	}

	var driver selenium.WebDriver
	var err error
	for _, port := range []string{"4445", "4446", "4444"} {
		driver, err = selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%s", port))
		if err == nil {
			log.Printf("browser: connected to chromedriver on port %s (session %s)", port, sessionID)
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("browser: failed to create selenium driver: %w", err)
	}

	if err := driver.SetImplicitWaitTimeout(selectorTimeout); err != nil {
		log.Printf("browser: could not set implicit wait: %v", err)
	}
	if err := driver.SetPageLoadTimeout(navigationTimeout); err != nil {
		log.Printf("browser: could not set page load timeout: %v", err)
	}

	if err := driver.ResizeWindow("", vp.width, vp.height); err != nil {
		log.Printf("browser: could not resize window: %v", err)
	}

	if _, err := driver.ExecuteScript(fingerprintStealthScript, nil); err != nil {
		log.Printf("browser: could not inject stealth script: %v", err)
	}

	geo := randomGeoPoint()
	log.Printf("browser: session %s picked geolocation %.4f,%.4f (not applied to the driver)", sessionID, geo.lat, geo.lng)

	return &Context{Driver: driver, SessionID: sessionID, Proxy: proxy}, nil
}

// HandleConsentDialog clicks an "I AGREE"-class button when visible.
// Failure to find one is not fatal, per §4.8.
func (c *Context) HandleConsentDialog() {
	deadline := time.Now().Add(consentTimeout)
	selectors := []string{
		`//button[contains(translate(text(), 'AGREE', 'agree'), 'agree')]`,
		`//button[contains(@class, 'consent')]`,
		`//a[contains(translate(text(), 'AGREE', 'agree'), 'agree')]`,
	}
	for time.Now().Before(deadline) {
		for _, sel := range selectors {
			el, err := c.Driver.FindElement(selenium.ByXPATH, sel)
			if err == nil && el != nil {
				if clickErr := el.Click(); clickErr == nil {
					log.Println("browser: dismissed consent dialog")
					return
				}
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Close tears the context down in the teacher-grounded order: close pages,
// close context (quit driver), short sleep, run process GC.
func (c *Context) Close() error {
	if c.Driver == nil {
		return nil
	}
	windows, err := c.Driver.CurrentWindowHandle()
	if err == nil && windows != "" {
		_ = c.Driver.Close()
	}
	err = c.Driver.Quit()
	time.Sleep(150 * time.Millisecond)
	runtime.GC()
	return err
}

// InterQueryDelay sleeps a randomized 0.5-1.0s between scraper batches, per
// the §5 rate-limiting policy.
func InterQueryDelay() {
	d := 500*time.Millisecond + time.Duration(rand.Intn(500))*time.Millisecond
	time.Sleep(d)
}
