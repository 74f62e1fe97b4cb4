package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollbarLoggerWritesLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewRollbarLogger(log.New(buf, "", 0), "", "test")
	defer l.Close()

	l.Info("server started")
	l.Error("loading course", errors.New("connection refused"), Person{ID: "7", Email: "a@x.com"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] server started")
	assert.Contains(t, out, "[ERROR] loading course connection refused")
}

type rollbarItem struct {
	Data struct {
		Title  string                 `json:"title"`
		Level  string                 `json:"level"`
		Custom map[string]interface{} `json:"custom"`
		Person *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"person"`
	} `json:"data"`
}

func TestRollbarLoggerKeepsPersonPerReport(t *testing.T) {
	var (
		mu    sync.Mutex
		items []rollbarItem
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var item rollbarItem
		if err := json.NewDecoder(r.Body).Decode(&item); err == nil {
			mu.Lock()
			items = append(items, item)
			mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	l := NewRollbarLogger(log.New(io.Discard, "", 0), "token", "test")
	l.client.SetEndpoint(srv.URL + "/")

	const reports = 40
	var wg sync.WaitGroup
	for i := 0; i < reports; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := fmt.Sprintf("request for user %d", i)
			var args []interface{}
			if i%4 != 0 {
				args = append(args, Person{ID: fmt.Sprint(i), Email: fmt.Sprintf("u%d@x.com", i)})
			}
			if i%2 == 0 {
				l.Warn(msg, args...)
				return
			}
			l.Error(msg, append(args, errors.New("boom"), map[string]interface{}{"request_id": i})...)
		}(i)
	}
	wg.Wait()
	l.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, items, reports)
	for _, item := range items {
		msg := item.Data.Title
		if item.Data.Level == "error" {
			msg, _ = item.Data.Custom["message"].(string)
		}
		require.True(t, strings.HasPrefix(msg, "request for user "), msg)
		var i int
		_, err := fmt.Sscanf(msg, "request for user %d", &i)
		require.NoError(t, err)

		if i%4 == 0 {
			assert.Nil(t, item.Data.Person, msg)
			continue
		}
		require.NotNil(t, item.Data.Person, msg)
		assert.Equal(t, fmt.Sprint(i), item.Data.Person.ID, msg)
		assert.Equal(t, fmt.Sprintf("u%d@x.com", i), item.Data.Person.Email, msg)
		if i%2 == 1 {
			assert.Equal(t, float64(i), item.Data.Custom["request_id"], msg)
		}
	}
}
