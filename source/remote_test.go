package source

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemote_GetEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/days.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "days-calendar-test", r.Header.Get("User-Agent"))

		data, err := os.ReadFile("testdata/days.json")
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})

	s := httptest.NewServer(mux)
	defer s.Close()

	remote := &Remote{
		Client:    s.Client(),
		URL:       s.URL + "/days.json",
		UserAgent: "days-calendar-test",
	}

	events, err := remote.GetEvents()
	require.NoError(t, err)
	assert.Equal(t, testdataDays, events)

	remote.URL = s.URL + "/missing.json"
	_, err = remote.GetEvents()
	assert.ErrorContains(t, err, "unexpected status 404")
}
