package errorinfo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/types"
)

// ReadinessSource looks up the current readiness of a site.
type ReadinessSource interface {
	Status(site string) types.Readiness
}

// Info holds one loaded snapshot of the aggregated error data. All
// lookups answer from the snapshot; a new Info is built when the cache
// refreshes rather than mutating an existing one.
type Info struct {
	mu        sync.Mutex
	db        *sql.DB
	timestamp time.Time

	steps []string
	sites []string
	codes []string

	// built lazily
	stepTables map[string]map[types.Readiness][]Entry
	stepOrder  map[string][]Entry
	stepLists  map[string][]string
}

// Entry is one sparse step-table element.
type Entry struct {
	NumErrors int
	Site      string
	Code      string
}

// errorDump is the shape of all_errors.json: step -> code -> site -> count.
type errorDump map[string]map[string]map[string]int

// New loads the aggregated error data from dataLocation. A path ending
// in .db that exists is opened directly; anything else is treated as an
// all_errors.json dump loaded into an in-memory database. Site
// readiness is resolved through src at load time.
func New(dataLocation string, src ReadinessSource) (*Info, error) {
	info := &Info{timestamp: time.Now()}

	if strings.HasSuffix(dataLocation, ".db") {
		if _, err := os.Stat(dataLocation); err == nil {
			db, err := sql.Open("sqlite", dataLocation)
			if err != nil {
				return nil, fmt.Errorf("failed to open error database: %w", err)
			}
			info.db = db
			if err := info.setAllLists(); err != nil {
				db.Close()
				return nil, err
			}
			log.WithComponent("errorinfo").Info().
				Str("location", dataLocation).
				Time("timestamp", info.timestamp).
				Msg("connection opened")
			return info, nil
		}
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	info.db = db

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := info.loadDump(dataLocation, src); err != nil {
		db.Close()
		return nil, err
	}

	if err := info.setAllLists(); err != nil {
		db.Close()
		return nil, err
	}

	log.WithComponent("errorinfo").Info().
		Str("location", dataLocation).
		Int("steps", len(info.steps)).
		Int("sites", len(info.sites)).
		Time("timestamp", info.timestamp).
		Msg("connection opened")

	return info, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE workflows (
		stepname TEXT, errorcode TEXT, sitename TEXT,
		numbererrors INTEGER, sitereadiness TEXT)`)
	if err != nil {
		return fmt.Errorf("failed to create workflows table: %w", err)
	}
	return nil
}

func (i *Info) loadDump(path string, src ReadinessSource) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read error data: %w", err)
	}

	var dump errorDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return fmt.Errorf("failed to parse error data: %w", err)
	}

	return i.insertDump(dump, src)
}

func (i *Info) insertDump(dump errorDump, src ReadinessSource) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO workflows (stepname, errorcode, sitename, numbererrors, sitereadiness)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	readiness := make(map[string]types.Readiness)
	lookup := func(site string) types.Readiness {
		if r, ok := readiness[site]; ok {
			return r
		}
		r := types.ReadinessNone
		if src != nil {
			r = src.Status(site)
		}
		readiness[site] = r
		return r
	}

	for step, codes := range dump {
		for code, sites := range codes {
			for site, count := range sites {
				if count == 0 {
					continue
				}
				if _, err := stmt.Exec(step, code, site, count, string(lookup(site))); err != nil {
					tx.Rollback()
					return fmt.Errorf("failed to insert error row: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}
	return nil
}

// AddWorkflowErrors inserts extra rows for workflows found through prep
// ID expansion and rebuilds the distinct lists.
func (i *Info) AddWorkflowErrors(dump map[string]map[string]map[string]int, src ReadinessSource) error {
	if err := i.insertDump(dump, src); err != nil {
		return err
	}

	i.mu.Lock()
	i.stepTables = nil
	i.stepOrder = nil
	i.stepLists = nil
	i.mu.Unlock()

	return i.setAllLists()
}

// AddEmptySteps appends pseudo-steps for recovery workflows that carry
// no errors, so they still show on the dashboard.
func (i *Info) AddEmptySteps(workflows []string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	seen := make(map[string]bool, len(i.steps))
	for _, step := range i.steps {
		seen[secondSegment(step)] = true
	}

	for _, wf := range workflows {
		if !seen[wf] {
			i.steps = append(i.steps, "/"+wf+"/")
		}
	}
	sort.Strings(i.steps)
	i.stepLists = nil
}

func (i *Info) setAllLists() error {
	distinct := func(column string) ([]string, error) {
		rows, err := i.query(fmt.Sprintf("SELECT DISTINCT %s FROM workflows", column))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, rows.Err()
	}

	steps, err := distinct("stepname")
	if err != nil {
		return fmt.Errorf("failed to list steps: %w", err)
	}
	sort.Strings(steps)

	sites, err := distinct("sitename")
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}
	sort.Strings(sites)

	codes, err := distinct("errorcode")
	if err != nil {
		return fmt.Errorf("failed to list error codes: %w", err)
	}
	sortCodes(codes)

	i.mu.Lock()
	i.steps = steps
	i.sites = sites
	i.codes = codes
	i.mu.Unlock()

	return nil
}

// sortCodes orders exit codes numerically where possible. Codes that
// are not numbers sort lexically after the numeric ones.
func sortCodes(codes []string) {
	sort.Slice(codes, func(a, b int) bool {
		na, errA := strconv.Atoi(codes[a])
		nb, errB := strconv.Atoi(codes[b])
		aok := errA == nil
		bok := errB == nil
		switch {
		case aok && bok:
			return na < nb
		case aok:
			return true
		case bok:
			return false
		default:
			return codes[a] < codes[b]
		}
	})
}

func (i *Info) query(q string, args ...interface{}) (*sql.Rows, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.db.Query(q, args...)
}

// Timestamp reports when this snapshot was loaded.
func (i *Info) Timestamp() time.Time {
	return i.timestamp
}

// Steps returns the sorted list of all step names.
func (i *Info) Steps() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.steps...)
}

// Sites returns the sorted list of all site names.
func (i *Info) Sites() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.sites...)
}

// Codes returns all exit codes, numerically sorted.
func (i *Info) Codes() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.codes...)
}

// AllMap maps each table axis name to its full list of values.
func (i *Info) AllMap() map[string][]string {
	return map[string][]string{
		"errorcode": i.Codes(),
		"stepname":  i.Steps(),
		"sitename":  i.Sites(),
	}
}

// Workflows returns the ordered unique workflow names, taken from the
// second path segment of each step.
func (i *Info) Workflows() []string {
	var wfs []string
	last := ""
	for _, step := range i.Steps() {
		val := secondSegment(step)
		if val != last {
			wfs = append(wfs, val)
			last = val
		}
	}
	return wfs
}

// StepList returns the steps belonging to one workflow.
func (i *Info) StepList(workflow string) []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stepLists == nil {
		i.stepLists = make(map[string][]string)
		for _, step := range i.steps {
			wf := secondSegment(step)
			i.stepLists[wf] = append(i.stepLists[wf], step)
		}
	}

	return i.stepLists[workflow]
}

func secondSegment(step string) string {
	parts := strings.Split(step, "/")
	if len(parts) > 1 {
		return parts[1]
	}
	return step
}

// Close closes the underlying database.
func (i *Info) Close() error {
	err := i.db.Close()
	log.WithComponent("errorinfo").Info().
		Time("timestamp", i.timestamp).
		Msg("connection closed")
	return err
}
