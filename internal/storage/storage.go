package storage

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"finterm/internal/chart"
	"finterm/internal/scheme"
)

const (
	driverName = "sqlite3"
	timeLayout = time.RFC3339
)

// Store wraps the SQLite database and exposes higher-level helpers.
type Store struct {
	db   *sql.DB
	path string
}

// Scheme is a named custom style override applied instead of theme styles.
type Scheme struct {
	ID        int64
	Name      string
	Style     string
	CreatedAt time.Time
}

// ImportResult summarizes a CSV import operation.
type ImportResult struct {
	Created int
	Skipped int
	Errors  []string
}

var (
	// ErrSchemeExists indicates a duplicate custom scheme name.
	ErrSchemeExists = errors.New("scheme already exists")
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Open bootstraps the SQLite store at the default path.
func Open(ctx context.Context) (*Store, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(ctx, path)
}

// OpenAt bootstraps the SQLite store at path.
func OpenAt(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &Store{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases DB resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func resolveDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.Getenv("HOME")
		if base == "" {
			return "", fmt.Errorf("cannot resolve data dir: %w", err)
		}
	}
	dir := filepath.Join(base, "finterm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create db dir: %w", err)
	}
	return filepath.Join(dir, "finterm.db"), nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bars (
            symbol TEXT NOT NULL,
            ts TEXT NOT NULL,
            open REAL NOT NULL,
            high REAL NOT NULL,
            low REAL NOT NULL,
            close REAL NOT NULL,
            volume REAL NOT NULL DEFAULT 0,
            PRIMARY KEY(symbol, ts)
        );`,
		`CREATE TABLE IF NOT EXISTS trades (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            symbol TEXT NOT NULL,
            ts TEXT NOT NULL,
            price REAL NOT NULL,
            side TEXT NOT NULL,
            description TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS schemes (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE COLLATE NOCASE,
            style TEXT NOT NULL,
            created_at TEXT NOT NULL
        );`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migrations: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

// ListSymbols returns every symbol that has bars, alphabetically.
func (s *Store) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM bars ORDER BY symbol COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("symbols rows: %w", err)
	}
	return symbols, nil
}

// UpsertBar stores a bar, replacing any bar at the same symbol and time.
func (s *Store) UpsertBar(ctx context.Context, symbol string, b chart.Bar) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol required")
	}
	if err := validateBar(b); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO bars (symbol, ts, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		symbol, b.Time.UTC().Format(timeLayout), b.Open, b.High, b.Low, b.Close, b.Volume)
	if err != nil {
		return fmt.Errorf("insert bar: %w", err)
	}
	return nil
}

// ListBars returns the most recent limit bars of symbol in time order.
func (s *Store) ListBars(ctx context.Context, symbol string, limit int) ([]chart.Bar, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.db.QueryContext(ctx, `SELECT ts, open, high, low, close, volume FROM (
            SELECT ts, open, high, low, close, volume FROM bars WHERE symbol = ? ORDER BY ts DESC LIMIT ?
        ) ORDER BY ts ASC`, strings.TrimSpace(symbol), limit)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []chart.Bar
	for rows.Next() {
		var b chart.Bar
		var ts string
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		if t, err := time.Parse(timeLayout, ts); err == nil {
			b.Time = t
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

// CreateTrade persists a trade marker for symbol.
func (s *Store) CreateTrade(ctx context.Context, symbol string, t chart.Trade) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol required")
	}
	if t.Time.IsZero() {
		t.Time = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO trades (symbol, ts, price, side, description) VALUES (?, ?, ?, ?, ?)`,
		symbol, t.Time.UTC().Format(timeLayout), t.Price, t.Side.String(), nullString(t.Description))
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// ListTrades returns the trades of symbol in time order.
func (s *Store) ListTrades(ctx context.Context, symbol string) ([]chart.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ts, price, side, description FROM trades WHERE symbol = ? ORDER BY ts ASC, id ASC`, strings.TrimSpace(symbol))
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []chart.Trade
	for rows.Next() {
		var t chart.Trade
		var ts, side string
		var desc sql.NullString
		if err := rows.Scan(&ts, &t.Price, &side, &desc); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		if parsed, err := time.Parse(timeLayout, ts); err == nil {
			t.Time = parsed
		}
		t.Side = parseSide(side)
		t.Description = nullStringToString(desc)
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trades, nil
}

// SaveScheme inserts a named custom style. The style must follow the
// key=value grammar.
func (s *Store) SaveScheme(ctx context.Context, sc *Scheme) error {
	name := strings.TrimSpace(sc.Name)
	if name == "" {
		return fmt.Errorf("scheme name required")
	}
	spec, err := scheme.ParseStyle(sc.Style)
	if err != nil {
		return fmt.Errorf("invalid style: %w", err)
	}
	if len(spec) == 0 {
		return fmt.Errorf("scheme style required")
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO schemes (name, style, created_at) VALUES (?, ?, ?)`,
		name, spec.String(), sc.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		if isUniqueConstraint(err) {
			return ErrSchemeExists
		}
		return fmt.Errorf("insert scheme: %w", err)
	}
	sc.Name = name
	sc.Style = spec.String()
	if id, err := res.LastInsertId(); err == nil {
		sc.ID = id
	}
	return nil
}

// SchemeByName retrieves a custom scheme by case-insensitive name.
func (s *Store) SchemeByName(ctx context.Context, name string) (*Scheme, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, style, created_at FROM schemes WHERE lower(name) = lower(?)`, strings.TrimSpace(name))
	sc, err := scanScheme(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get scheme: %w", err)
	}
	return &sc, nil
}

// ListSchemes loads all custom schemes ordered alphabetically.
func (s *Store) ListSchemes(ctx context.Context) ([]Scheme, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, style, created_at FROM schemes ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("query schemes: %w", err)
	}
	defer rows.Close()

	var schemes []Scheme
	for rows.Next() {
		sc, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}
		schemes = append(schemes, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schemes rows: %w", err)
	}
	return schemes, nil
}

// DeleteScheme removes a custom scheme by name.
func (s *Store) DeleteScheme(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schemes WHERE lower(name) = lower(?)`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete scheme: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ImportBarsCSV ingests bars for symbol from a CSV reader with a header row
// naming time, open, high, low, close and optionally volume.
func (s *Store) ImportBarsCSV(ctx context.Context, r io.Reader, symbol string, loc *time.Location) (ImportResult, error) {
	result := ImportResult{}
	if strings.TrimSpace(symbol) == "" {
		return result, fmt.Errorf("symbol required")
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("read header: %w", err)
	}
	index := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "date" || key == "timestamp" {
			key = "time"
		}
		if key != "" {
			index[key] = i
		}
	}
	for _, col := range []string{"time", "open", "high", "low", "close"} {
		if _, ok := index[col]; !ok {
			return result, fmt.Errorf("csv missing '%s' column", col)
		}
	}
	locUsed := loc
	if locUsed == nil {
		locUsed = time.Local
	}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			result.Skipped++
			continue
		}
		bar, err := parseBarRecord(record, index, locUsed)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			result.Skipped++
			continue
		}
		if err := s.UpsertBar(ctx, symbol, bar); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			result.Skipped++
			continue
		}
		result.Created++
	}
	return result, nil
}

// SeedDemo fills symbol with a deterministic random walk when it has no bars.
// It reports whether anything was written.
func (s *Store) SeedDemo(ctx context.Context, symbol string, count int, end time.Time) (bool, error) {
	existing, err := s.ListBars(ctx, symbol, 1)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	rng := rand.New(rand.NewSource(20201118))
	price := 100.0
	start := end.Add(-time.Duration(count) * time.Hour).Truncate(time.Hour)
	var bars []chart.Bar
	for i := 0; i < count; i++ {
		open := price
		last := math.Max(1, open+rng.NormFloat64()*1.2)
		bars = append(bars, chart.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   round2(open),
			High:   round2(math.Max(open, last) + rng.Float64()*0.8),
			Low:    round2(math.Max(0.5, math.Min(open, last)-rng.Float64()*0.8)),
			Close:  round2(last),
			Volume: math.Round(500 + rng.Float64()*1500),
		})
		price = last
	}
	for _, b := range bars {
		if err := s.UpsertBar(ctx, symbol, b); err != nil {
			return false, err
		}
	}
	for i := 10; i+8 < len(bars); i += 24 {
		side := chart.SideLong
		if rng.Intn(2) == 0 {
			side = chart.SideShort
		}
		entry := chart.Trade{Time: bars[i].Time, Price: bars[i].Close, Side: side, Description: "demo " + side.String()}
		exit := chart.Trade{Time: bars[i+8].Time, Price: bars[i+8].Close, Side: chart.SideExit, Description: "demo exit"}
		for _, t := range []chart.Trade{entry, exit} {
			if err := s.CreateTrade(ctx, symbol, t); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheme(rs rowScanner) (Scheme, error) {
	var sc Scheme
	var created string
	if err := rs.Scan(&sc.ID, &sc.Name, &sc.Style, &created); err != nil {
		return Scheme{}, err
	}
	if t, err := time.Parse(timeLayout, created); err == nil {
		sc.CreatedAt = t
	}
	return sc, nil
}

func parseBarRecord(record []string, index map[string]int, loc *time.Location) (chart.Bar, error) {
	field := func(name string) (string, bool) {
		idx, ok := index[name]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}
	var b chart.Bar
	stamp, ok := field("time")
	if !ok || stamp == "" {
		return b, fmt.Errorf("missing time field")
	}
	t, ok := parseImportTime(stamp, loc)
	if !ok {
		return b, fmt.Errorf("unrecognised time %q", stamp)
	}
	b.Time = t
	targets := []struct {
		name     string
		dst      *float64
		optional bool
	}{
		{"open", &b.Open, false},
		{"high", &b.High, false},
		{"low", &b.Low, false},
		{"close", &b.Close, false},
		{"volume", &b.Volume, true},
	}
	for _, target := range targets {
		raw, ok := field(target.name)
		if !ok || raw == "" {
			if target.optional {
				continue
			}
			return b, fmt.Errorf("missing %s field", target.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return b, fmt.Errorf("invalid %s %q", target.name, raw)
		}
		*target.dst = v
	}
	return b, validateBar(b)
}

func validateBar(b chart.Bar) error {
	if b.Time.IsZero() {
		return fmt.Errorf("bar time required")
	}
	if b.High < b.Low {
		return fmt.Errorf("high %.4f below low %.4f", b.High, b.Low)
	}
	if b.Open > b.High || b.Open < b.Low || b.Close > b.High || b.Close < b.Low {
		return fmt.Errorf("open/close outside high-low range")
	}
	if b.Volume < 0 {
		return fmt.Errorf("negative volume")
	}
	return nil
}

func parseSide(s string) chart.Side {
	switch strings.ToLower(s) {
	case "short":
		return chart.SideShort
	case "exit":
		return chart.SideExit
	}
	return chart.SideLong
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func parseImportTime(value string, loc *time.Location) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/01/02 15:04",
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0).In(loc), true
	}
	return time.Time{}, false
}

func nullString(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func isUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
