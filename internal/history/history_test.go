package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestLog_NewestFirst(t *testing.T) {
	l := NewLog()
	require.Empty(t, l.Entries())

	l.Append(domain.ChatEntry{Question: "first", AskedAt: time.Now()})
	l.Append(domain.ChatEntry{Question: "second", AskedAt: time.Now()})
	l.Append(domain.ChatEntry{Question: "third", AskedAt: time.Now()})

	entries := l.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "third", entries[0].Question)
	require.Equal(t, "second", entries[1].Question)
	require.Equal(t, "first", entries[2].Question)
	require.Equal(t, 3, l.Len())
}

func TestLog_SnapshotIsolation(t *testing.T) {
	l := NewLog()
	l.Append(domain.ChatEntry{Question: "q"})
	snap := l.Entries()
	l.Append(domain.ChatEntry{Question: "later"})
	require.Len(t, snap, 1)
}

func TestAudit_AppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.txt")

	a, err := OpenAudit(path)
	require.NoError(t, err)
	require.NoError(t, a.RecordQuestion("one"))
	require.NoError(t, a.Close())

	a, err = OpenAudit(path)
	require.NoError(t, err)
	require.NoError(t, a.RecordQuestion("two"))
	require.NoError(t, a.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "USER: one\nUSER: two\n", string(data))
}
