package linkcheck

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

func TestCheckURL(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	missing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer missing.Close()

	c := NewChecker()
	assert.Equal(t, StatusOnline, c.CheckURL(ok.URL))
	assert.Equal(t, StatusOffline, c.CheckURL(missing.URL))
	assert.Equal(t, StatusUnknown, c.CheckURL(""))

	// unreachable host
	assert.Equal(t, StatusOffline, c.CheckURL("http://127.0.0.1:1"))
}

func TestCheckProject(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	now := time.Now().UTC()
	c := NewChecker()

	status := c.CheckProject(&models.Project{RepositoryURL: ok.URL}, now)
	require.NotNil(t, status.Repository)
	assert.Equal(t, StatusOnline, status.Repository.Status)
	assert.Equal(t, now, status.Repository.LastChecked)
	assert.Nil(t, status.Demo, "unset URLs are not probed")

	status = c.CheckProject(&models.Project{}, now)
	assert.Nil(t, status.Repository)
	assert.Nil(t, status.Demo)
}
