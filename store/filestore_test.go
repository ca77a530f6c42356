package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "store.json"))

	snap, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.json")
	fs := NewFileStore(path)

	published := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	snap := model.Snapshot{}
	state := snap.Channel("UCtest")
	state.Videos["vid-1"] = model.VideoRecord{
		VideoID:     "vid-1",
		Title:       "First upload",
		PublishedAt: published,
		ChannelID:   "UCtest",
		Views:       42,
	}
	state.LastSeenVideoID = "vid-1"
	state.LastPublishedAt = published

	require.NoError(t, fs.Save(snap))

	loaded, err := fs.Load()
	require.NoError(t, err)
	require.Contains(t, loaded, "UCtest")
	got := loaded["UCtest"]
	assert.Equal(t, "vid-1", got.LastSeenVideoID)
	assert.True(t, got.LastPublishedAt.Equal(published))
	assert.Equal(t, int64(42), got.Videos["vid-1"].Views)
}

func TestFileStoreSaveIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	fs := NewFileStore(path)

	require.NoError(t, fs.Save(model.Snapshot{"UCa": model.NewChannelState()}))
	require.NoError(t, fs.Save(model.Snapshot{"UCb": model.NewChannelState()}))

	// No temp file left behind after a successful save.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.NotContains(t, loaded, "UCa")
	assert.Contains(t, loaded, "UCb")
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestChannelLockerSerializesSameChannel(t *testing.T) {
	locker := NewChannelLocker()

	var inCritical int
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("UCsame")
			defer unlock()
			inCritical++
			if inCritical != 1 {
				t.Error("two goroutines inside the same channel's critical section")
			}
			time.Sleep(time.Millisecond)
			inCritical--
		}()
	}
	wg.Wait()
}

func TestChannelLockerIndependentChannels(t *testing.T) {
	locker := NewChannelLocker()

	unlockA := locker.Lock("UCa")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locker.Lock("UCb")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different channel blocked")
	}
}
