package jsonout

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inful/supercollider/internal/adapter"
	"github.com/inful/supercollider/internal/doc"
)

func TestJSONAdapter_WritesTree(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "site")
	tree := &doc.Tree{
		Groups: []doc.Group{
			{Key: doc.ExplicitKey("buttons"), Name: "buttons", Slug: "buttons", Entries: []doc.Entry{
				{Title: "Primary", Body: "A\n", Fields: map[string]any{"section": "buttons", "title": "Primary"}},
			}},
			{Key: doc.DefaultKey(), Name: doc.DefaultGroupName, Default: true, Slug: "default", Entries: []doc.Entry{{Body: "B\n"}}},
		},
		Unprocessed: []doc.Unprocessed{{Record: doc.Record{File: "x.html", Type: doc.Markup}, Reason: "bad yaml"}},
	}

	err := New()(context.Background(), adapter.Input{Tree: tree, DestDir: dest, BuildID: "b-1", Revision: "abc123"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, FileName))
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "b-1", got.BuildID)
	require.Equal(t, "abc123", got.Revision)
	require.Len(t, got.Groups, 2)
	require.Equal(t, "buttons", got.Groups[0].Name)
	require.Equal(t, "Primary", got.Groups[0].Entries[0].Title)
	require.True(t, got.Groups[1].Default)
	require.Equal(t, "bad yaml", got.Unprocessed[0].Reason)
}

func TestJSONAdapter_EmptyTreeWritesEmptyGroups(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, New()(context.Background(), adapter.Input{Tree: &doc.Tree{}, DestDir: dest}))

	data, err := os.ReadFile(filepath.Join(dest, FileName))
	require.NoError(t, err)
	require.Contains(t, string(data), `"groups": []`)
}

func TestJSONAdapter_IsStableAcrossRuns(t *testing.T) {
	tree := &doc.Tree{Groups: []doc.Group{{Name: "a", Slug: "a", Entries: []doc.Entry{
		{Body: "x\n", Fields: map[string]any{"z": 1, "a": 2, "m": []any{"k"}}},
	}}}}
	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, New()(context.Background(), adapter.Input{Tree: tree, DestDir: first}))
	require.NoError(t, New()(context.Background(), adapter.Input{Tree: tree, DestDir: second}))

	a, err := os.ReadFile(filepath.Join(first, FileName))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, FileName))
	require.NoError(t, err)
	require.Equal(t, string(a), string(b))
}

func TestJSONAdapter_MissingDestFails(t *testing.T) {
	err := New()(context.Background(), adapter.Input{Tree: &doc.Tree{}})
	require.Error(t, err)
}
