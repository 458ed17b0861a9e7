package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/bandkon/kon/internal/algorithm"
	"github.com/bandkon/kon/pkg/compression"
	"github.com/bandkon/kon/pkg/writer"
)

// assignmentRow is one room/span/block/band line of an exported assignment,
// sorted by (room, span) so repeated exports of the same table produce
// byte-identical output.
type assignmentRow struct {
	Room     int                `json:"room"`
	Span     int                `json:"span"`
	BlockID  algorithm.BlockId  `json:"block_id"`
	BandName string             `json:"band_name"`
}

func assignmentRows(table map[algorithm.BlockId]algorithm.BandId, rm *algorithm.RoomMatrix, li *algorithm.LiveInfo) []assignmentRow {
	rows := make([]assignmentRow, 0, len(table))
	for block, band := range table {
		rows = append(rows, assignmentRow{
			Room:     int(rm.BlockRoom(block)),
			Span:     int(rm.BlockSpan(block)),
			BlockID:  block,
			BandName: li.BandName(band),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Room != rows[j].Room {
			return rows[i].Room < rows[j].Room
		}
		return rows[i].Span < rows[j].Span
	})
	return rows
}

// ExportAssignment renders a completed assignment table as CSV
// (room,span,block_id,band_name) and uploads it to key via st.
func ExportAssignment(ctx context.Context, st Storage, key string, table map[algorithm.BlockId]algorithm.BandId, rm *algorithm.RoomMatrix, li *algorithm.LiveInfo) error {
	rows := assignmentRows(table, rm, li)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"room", "span", "block_id", "band_name"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprintf("%d", r.Room),
			fmt.Sprintf("%d", r.Span),
			fmt.Sprintf("%d", r.BlockID),
			r.BandName,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if err := st.Upload(ctx, key, &buf); err != nil {
		return fmt.Errorf("failed to upload assignment export: %w", err)
	}
	return nil
}

// ExportAssignmentCompressed behaves like ExportAssignment, but zstd-
// compresses the CSV body before upload. Intended for archival exports
// (--export runs.csv.zst) where the run has many assignments and
// compression ratio matters more than the reader needing a plain CSV.
func ExportAssignmentCompressed(ctx context.Context, st Storage, key string, table map[algorithm.BlockId]algorithm.BandId, rm *algorithm.RoomMatrix, li *algorithm.LiveInfo) error {
	rows := assignmentRows(table, rm, li)

	var raw bytes.Buffer
	w := csv.NewWriter(&raw)
	if err := w.Write([]string{"room", "span", "block_id", "band_name"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprintf("%d", r.Room),
			fmt.Sprintf("%d", r.Span),
			fmt.Sprintf("%d", r.BlockID),
			r.BandName,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	zstd, err := compression.NewZstdCompressor(compression.LevelDefault)
	if err != nil {
		return fmt.Errorf("failed to create zstd compressor: %w", err)
	}
	compressed, err := zstd.Compress(raw.Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress assignment export: %w", err)
	}

	if err := st.Upload(ctx, key, bytes.NewReader(compressed)); err != nil {
		return fmt.Errorf("failed to upload assignment export: %w", err)
	}
	return nil
}

// ExportAssignmentJSON renders a completed assignment table as a pretty-
// printed JSON array and uploads it to key via st.
func ExportAssignmentJSON(ctx context.Context, st Storage, key string, table map[algorithm.BlockId]algorithm.BandId, rm *algorithm.RoomMatrix, li *algorithm.LiveInfo) error {
	rows := assignmentRows(table, rm, li)

	var buf bytes.Buffer
	jw := writer.NewPrettyJSONWriter[[]assignmentRow]()
	if err := jw.Write(rows, &buf); err != nil {
		return fmt.Errorf("failed to encode assignment json: %w", err)
	}

	if err := st.Upload(ctx, key, &buf); err != nil {
		return fmt.Errorf("failed to upload assignment export: %w", err)
	}
	return nil
}
