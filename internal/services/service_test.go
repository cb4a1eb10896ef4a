package services

import (
	"path/filepath"
	"sync"
	"testing"

	"lanshare/internal/config"
	"lanshare/internal/models"
	"lanshare/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// recordedEvent captures one fan-out publish for assertions.
type recordedEvent struct {
	Channel string
	Event   string
	Data    interface{}
}

// eventRecorder is a Broadcaster that remembers every publish.
type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) Publish(channel, event string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Channel: channel, Event: event, Data: data})
}

func (r *eventRecorder) all() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}

func (r *eventRecorder) byName(event string) []recordedEvent {
	var out []recordedEvent
	for _, e := range r.all() {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FileRecord{}, &models.Message{}))
	return db
}

func testShareConfig(uploadDir string) config.ShareConfig {
	cfg := config.MainConfig{}
	cfg.Share.Storage.UploadDir = uploadDir
	cfg.Share.Storage.CreateDirs = true
	config.ApplyDefaults(&cfg)
	return cfg.Share
}

// newTestEnv wires a file and message service against an in-memory
// database and a throwaway upload dir.
func newTestEnv(t *testing.T) (*FileService, *MessageService, *eventRecorder, string, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	dir := t.TempDir()
	cfg := testShareConfig(dir)
	events := &eventRecorder{}
	store := storage.NewBlobStore(cfg.Storage)
	return NewFileService(db, store, events, cfg),
		NewMessageService(db, store, events, cfg),
		events, dir, db
}
