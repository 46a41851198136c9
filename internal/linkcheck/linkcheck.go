// Package linkcheck probes project repository and demo URLs and records
// their reachability.
package linkcheck

import (
	"net/http"
	"time"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

// URL health states.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusUnknown = "unknown"
)

// Checker performs URL health probes with a bounded timeout.
type Checker struct {
	client *http.Client
}

func NewChecker() *Checker {
	return &Checker{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CheckURL probes a single URL. A 2xx/3xx response is online, any other
// response is offline, and a transport failure is offline as well. An empty
// URL is unknown.
func (c *Checker) CheckURL(url string) string {
	if url == "" {
		return StatusUnknown
	}

	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return StatusUnknown
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return StatusOffline
	}
	defer resp.Body.Close()

	if resp.StatusCode < 400 {
		return StatusOnline
	}
	return StatusOffline
}

// CheckProject probes a project's repository and demo URLs and returns the
// resulting status block. URLs that are not set are left out.
func (c *Checker) CheckProject(p *models.Project, now time.Time) *models.URLStatus {
	status := &models.URLStatus{}
	if p.RepositoryURL != "" {
		status.Repository = &models.URLCheck{
			URL:         p.RepositoryURL,
			Status:      c.CheckURL(p.RepositoryURL),
			LastChecked: now,
		}
	}
	if p.DemoURL != "" {
		status.Demo = &models.URLCheck{
			URL:         p.DemoURL,
			Status:      c.CheckURL(p.DemoURL),
			LastChecked: now,
		}
	}
	return status
}
