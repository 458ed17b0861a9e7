package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bandkon/kon/internal/algorithm"
	"github.com/bandkon/kon/internal/ingest"
	"github.com/bandkon/kon/internal/repository"
	"github.com/bandkon/kon/internal/storage"
)

var (
	bandFlags     []string
	scheduleFlags []string
	roomsFlag     string

	bandCSVPath     string
	scheduleCSVPath string
	roomHTMLPath    string

	subTreeDepth            int
	jobCount                int
	forceSynchronizeForDebug bool
	exportPath              string
	dbSave                  bool
)

// assignCmd represents the assign command
var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign bands to room/time-slot blocks",
	Long: `assign reads band rosters, availability, and room layouts, then
searches for valid block->band assignments subject to member-conflict and
availability constraints.

Input can come from repeatable --band/--schedule flags, from
--band-csv/--schedule-csv/--room-html files, or both (flags augment file
input).`,
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)

	assignCmd.Flags().StringArrayVar(&bandFlags, "band", nil, `Band spec "NAME/MEMBER,MEMBER,..." (repeatable)`)
	assignCmd.Flags().StringArrayVar(&scheduleFlags, "schedule", nil, `Schedule spec "NAME/BOOL,BOOL,..." (repeatable)`)
	assignCmd.Flags().StringVar(&roomsFlag, "rooms", "", "Comma-separated room block counts, e.g. 2,1,3")

	assignCmd.Flags().StringVar(&bandCSVPath, "band-csv", "", "CSV file of band rosters")
	assignCmd.Flags().StringVar(&scheduleCSVPath, "schedule-csv", "", "CSV file of band availability")
	assignCmd.Flags().StringVar(&roomHTMLPath, "room-html", "", "HTML file with one <tr> per room")

	assignCmd.Flags().IntVar(&subTreeDepth, "sub-tree-depth", 0, "Async sub-tree depth (0 = use config default)")
	assignCmd.Flags().IntVar(&jobCount, "job", 0, "Async max in-flight sub-trees (0 = use config default)")
	assignCmd.Flags().BoolVar(&forceSynchronizeForDebug, "force-synchronize-for-debug", false, "Run the synchronous path even when job > 1")
	assignCmd.Flags().StringVar(&exportPath, "export", "", "Export each assignment to storage under this key (.json => JSON, .zst => compressed, else CSV; assignments after the first get a -N suffix)")
	assignCmd.Flags().BoolVar(&dbSave, "db-save", false, "Persist the run and its assignments via the configured database")
}

func runAssign(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	bandTable := map[string][]string{}
	scheduleTable := map[string][]bool{}
	var roomSpec []int

	if bandCSVPath != "" {
		f, err := os.Open(bandCSVPath)
		if err != nil {
			return fmt.Errorf("open band csv: %w", err)
		}
		defer f.Close()
		parsed, err := ingest.ParseBandCSV(f, ingest.Options{})
		if err != nil {
			return fmt.Errorf("parse band csv: %w", err)
		}
		for name, members := range parsed {
			bandTable[name] = members
		}
	}
	if scheduleCSVPath != "" {
		f, err := os.Open(scheduleCSVPath)
		if err != nil {
			return fmt.Errorf("open schedule csv: %w", err)
		}
		defer f.Close()
		parsed, err := ingest.ParseScheduleCSV(f, ingest.Options{})
		if err != nil {
			return fmt.Errorf("parse schedule csv: %w", err)
		}
		for name, avail := range parsed {
			scheduleTable[name] = avail
		}
	}
	if roomHTMLPath != "" {
		f, err := os.Open(roomHTMLPath)
		if err != nil {
			return fmt.Errorf("open room html: %w", err)
		}
		defer f.Close()
		spec, err := ingest.ParseRoomHTML(f, ingest.Options{})
		if err != nil {
			return fmt.Errorf("parse room html: %w", err)
		}
		roomSpec = spec
	}

	for _, spec := range bandFlags {
		name, members, err := parseBandFlag(spec)
		if err != nil {
			return err
		}
		bandTable[name] = members
	}
	for _, spec := range scheduleFlags {
		name, avail, err := parseScheduleFlag(spec)
		if err != nil {
			return err
		}
		scheduleTable[name] = avail
	}
	if roomsFlag != "" {
		spec, err := parseRoomsFlag(roomsFlag)
		if err != nil {
			return err
		}
		roomSpec = spec
	}

	if len(roomSpec) == 0 {
		return fmt.Errorf("no room spec provided (use --rooms or --room-html)")
	}
	if len(bandTable) == 0 {
		return fmt.Errorf("no bands provided (use --band or --band-csv)")
	}

	rm, err := buildRoomMatrix(roomSpec)
	if err != nil {
		return fmt.Errorf("build room matrix: %w", err)
	}
	li, err := algorithm.BuildLiveInfo(bandTable, scheduleTable, rm)
	if err != nil {
		return fmt.Errorf("build live info: %w", err)
	}

	cfg := GetConfig()
	depth := subTreeDepth
	if depth == 0 {
		depth = cfg.Scheduler.SubTreeDepth
	}
	jobs := jobCount
	if jobs == 0 {
		jobs = cfg.Scheduler.TaskCountMax
	}

	decorator := &algorithm.MemberConflictDecorator{Inner: &algorithm.BandScheduleDecorator{}}
	sched := algorithm.NewScheduler(decorator).WithSubTreeDepth(depth).WithTaskCountMax(jobs)

	var recorder *repository.SchedulerRecorder
	var repos *repository.Repositories
	if dbSave {
		dbCfg := &repository.DBConfig{
			Type:     cfg.Database.Type,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			Database: cfg.Database.Database,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			MaxConns: cfg.Database.MaxConns,
		}
		gormDB, err := repository.NewGormDB(dbCfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		repos = repository.NewRepositories(gormDB, cfg.Database.Type)
		defer repos.Close()

		recorder = repository.NewSchedulerRecorder(cmd.Context(), repos.Run)
	}

	var tables []map[algorithm.BlockId]algorithm.BandId
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	if recorder != nil {
		traced := algorithm.Traced(recorder)
		schedWithCb := algorithm.NewSchedulerWithCallback(decorator, traced).WithSubTreeDepth(depth).WithTaskCountMax(jobs)
		if forceSynchronizeForDebug || jobs <= 1 {
			_, err = schedWithCb.Assign(rm, li)
		} else {
			_, err = schedWithCb.AssignAsync(ctx, rm, li)
		}
		if err != nil {
			return fmt.Errorf("assign: %w", err)
		}
		if recorder.Err() != nil {
			log.Warn("recorder encountered write errors: %v", recorder.Err())
		}
		log.Info("run recorded with ID %d", recorder.RunID())
	} else if forceSynchronizeForDebug || jobs <= 1 {
		tables, err = sched.Assign(rm, li)
	} else {
		tables, err = sched.AssignAsync(ctx, rm, li)
	}
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}

	log.Info("found %d assignment(s)", len(tables))

	if exportPath != "" {
		st, err := storage.NewStorage(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		for i, table := range tables {
			key := exportKey(exportPath, i)
			exportFn := storage.ExportAssignment
			switch {
			case strings.HasSuffix(key, ".json"):
				exportFn = storage.ExportAssignmentJSON
			case strings.HasSuffix(key, ".zst"):
				exportFn = storage.ExportAssignmentCompressed
			}
			if err := exportFn(ctx, st, key, table, rm, li); err != nil {
				return fmt.Errorf("export assignment %d: %w", i, err)
			}
			log.Info("exported assignment %d to %s", i, key)
		}
	}

	return nil
}

func exportKey(prefix string, index int) string {
	if index == 0 {
		return prefix
	}
	if dot := strings.LastIndex(prefix, "."); dot > 0 {
		return fmt.Sprintf("%s-%d%s", prefix[:dot], index, prefix[dot:])
	}
	return fmt.Sprintf("%s-%d", prefix, index)
}

func buildRoomMatrix(roomSpec []int) (*algorithm.RoomMatrix, error) {
	b := algorithm.NewRoomMatrixBuilder()
	for _, n := range roomSpec {
		b.PushRoom(n)
	}
	return b.Build()
}

func parseBandFlag(spec string) (string, []string, error) {
	name, rest, ok := strings.Cut(spec, "/")
	if !ok {
		return "", nil, fmt.Errorf("malformed --band %q, expected NAME/MEMBER,MEMBER,...", spec)
	}
	members := strings.Split(rest, ",")
	return name, members, nil
}

func parseScheduleFlag(spec string) (string, []bool, error) {
	name, rest, ok := strings.Cut(spec, "/")
	if !ok {
		return "", nil, fmt.Errorf("malformed --schedule %q, expected NAME/BOOL,BOOL,...", spec)
	}
	cells := strings.Split(rest, ",")
	avail := make([]bool, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseBool(strings.TrimSpace(cell))
		if err != nil {
			return "", nil, fmt.Errorf("malformed --schedule %q cell %q: %w", spec, cell, err)
		}
		avail[i] = v
	}
	return name, avail, nil
}

func parseRoomsFlag(spec string) ([]int, error) {
	cells := strings.Split(spec, ",")
	spec2 := make([]int, len(cells))
	for i, cell := range cells {
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("malformed --rooms %q: %w", spec, err)
		}
		spec2[i] = n
	}
	return spec2, nil
}
