package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newManager(t *testing.T) (*Manager, context.CancelFunc) {
	t.Helper()
	m := NewManager(logger.Discard().Logger)
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	return m, cancel
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.EventChan:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_BroadcastsToClients(t *testing.T) {
	m, cancel := newManager(t)
	defer cancel()

	c, err := m.Connect("")
	require.NoError(t, err)

	b := &domain.Book{Title: "Dune"}
	b.ID = "book-1"
	m.Emit(NewBookCreatedEvent(b))

	e := receive(t, c)
	assert.Equal(t, EventBookCreated, e.Type)
	data, ok := e.Data.(RecordEventData)
	require.True(t, ok)
	assert.Equal(t, "book-1", data.ID)

	require.NoError(t, m.Shutdown(context.Background()))
}

func TestManager_KindFilter(t *testing.T) {
	m, cancel := newManager(t)
	defer cancel()

	mags, err := m.Connect(domain.KindMagazine)
	require.NoError(t, err)

	m.Emit(NewBookDeletedEvent("book-1"))
	m.Emit(NewMagazineDeletedEvent("mag-1"))

	e := receive(t, mags)
	assert.Equal(t, EventMagazineDeleted, e.Type)

	require.NoError(t, m.Shutdown(context.Background()))
}

func TestManager_ShutdownClosesClients(t *testing.T) {
	m, cancel := newManager(t)
	defer cancel()

	c, err := m.Connect("")
	require.NoError(t, err)

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))

	_, open := <-c.Done
	assert.False(t, open)
	assert.Equal(t, 0, m.ClientCount())

	// Emitting after shutdown is a silent no-op.
	m.Emit(NewBookDeletedEvent("book-1"))
}

func TestManager_ShutdownWithoutStart(t *testing.T) {
	m := NewManager(logger.Discard().Logger)
	_, err := m.Connect("")
	require.NoError(t, err)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_Disconnect(t *testing.T) {
	m := NewManager(logger.Discard().Logger)
	c, err := m.Connect("")
	require.NoError(t, err)

	m.Disconnect(c.ID)
	m.Disconnect(c.ID)
	assert.Equal(t, 0, m.ClientCount())
}

func TestEventKind(t *testing.T) {
	assert.Equal(t, domain.KindBook, EventBookUpdated.Kind())
	assert.Equal(t, domain.KindMagazine, EventMagazineCreated.Kind())
	assert.Equal(t, domain.Kind(""), EventHeartbeat.Kind())
}

func TestHandler_StreamsEvents(t *testing.T) {
	m, cancel := newManager(t)
	defer cancel()

	srv := httptest.NewServer(NewHandler(m, logger.Discard().Logger))
	defer srv.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?kind=book", nil)
	require.NoError(t, err)

	client := &http.Client{Transport: &http.Transport{}}
	defer client.CloseIdleConnections()

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if line := lines.Text(); strings.HasPrefix(line, "event: ") {
				return strings.TrimPrefix(line, "event: ")
			}
		}
		return ""
	}

	require.Equal(t, "connected", next())

	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	m.Emit(NewBookDeletedEvent("book-9"))
	assert.Equal(t, string(EventBookDeleted), next())

	stop()
	require.NoError(t, m.Shutdown(context.Background()))
}

func TestHandler_RejectsUnknownKind(t *testing.T) {
	m := NewManager(logger.Discard().Logger)
	rec := httptest.NewRecorder()

	NewHandler(m, logger.Discard().Logger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?kind=pamphlet", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"VALIDATION"`)
	assert.Contains(t, rec.Body.String(), `unknown kind \"pamphlet\"`)
}

func TestHandler_RejectsPost(t *testing.T) {
	m := NewManager(logger.Discard().Logger)
	rec := httptest.NewRecorder()

	NewHandler(m, logger.Discard().Logger).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}
