package storage

import (
	"context"
	"io"
	"testing"

	"github.com/bandkon/kon/internal/algorithm"
	"github.com/bandkon/kon/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestExportAssignment(t *testing.T) {
	rm, err := algorithm.NewRoomMatrixBuilder().PushRoom(2).PushRoom(1).Build()
	require.NoError(t, err)

	li, err := algorithm.BuildLiveInfo(map[string][]string{"x": {"a"}, "y": {"b"}}, nil, rm)
	require.NoError(t, err)

	blocks := rm.Blocks()
	table := map[algorithm.BlockId]algorithm.BandId{
		blocks[0]: li.BandIds()[0],
		blocks[1]: li.BandIds()[1],
	}

	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ExportAssignment(ctx, st, "runs/1.csv", table, rm, li))

	rc, err := st.Download(ctx, "runs/1.csv")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)

	content := string(data)
	require.Contains(t, content, "room,span,block_id,band_name")
	require.Contains(t, content, li.BandName(li.BandIds()[0]))
	require.Contains(t, content, li.BandName(li.BandIds()[1]))
}

func TestExportAssignmentJSON(t *testing.T) {
	rm, err := algorithm.NewRoomMatrixBuilder().PushRoom(1).Build()
	require.NoError(t, err)

	li, err := algorithm.BuildLiveInfo(map[string][]string{"x": {"a"}}, nil, rm)
	require.NoError(t, err)

	blocks := rm.Blocks()
	table := map[algorithm.BlockId]algorithm.BandId{blocks[0]: li.BandIds()[0]}

	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ExportAssignmentJSON(ctx, st, "runs/1.json", table, rm, li))

	rc, err := st.Download(ctx, "runs/1.json")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)

	testutil.AssertJSONEqual(t, `[{"room":0,"span":0,"block_id":0,"band_name":"x"}]`, string(data))
}
