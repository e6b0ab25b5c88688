package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver es el nombre registrado en database/sql.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

// DB envuelve el pool y sabe cómo hablarle a cada motor
// (placeholders, instantes y fechas civiles).
type DB struct {
	*sql.DB
	driver Driver
}

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OpenPostgres abre una conexión pool a Postgres usando pgx (database/sql).
func OpenPostgres(dsn string, pool PoolConfig) (*DB, error) {
	db, err := sql.Open(string(DriverPostgres), dsn)
	if err != nil {
		return nil, err
	}

	if pool.MaxOpenConns <= 0 {
		pool.MaxOpenConns = 10
	}
	if pool.MaxIdleConns <= 0 {
		pool.MaxIdleConns = 5
	}
	if pool.ConnMaxLifetime <= 0 {
		pool.ConnMaxLifetime = 30 * time.Minute
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{DB: db, driver: DriverPostgres}, nil
}

// sqlitePragmas se pasan en el DSN para que apliquen a cada conexión del pool.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// OpenSQLite abre (o crea) la base en path. ":memory:" usa una sola conexión:
// cada conexión nueva sería una base vacía distinta.
func OpenSQLite(path string) (*DB, error) {
	params := make([]string, 0, len(sqlitePragmas))
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}
	dsn := path + "?" + strings.Join(params, "&")

	db, err := sql.Open(string(DriverSQLite), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &DB{DB: db, driver: DriverSQLite}, nil
}

func (db *DB) Driver() Driver { return db.driver }

// rebind pasa los "?" a "$n" para Postgres. Las queries no llevan "?" literales.
func (db *DB) rebind(q string) string {
	if db.driver != DriverPostgres {
		return q
	}

	var sb strings.Builder
	sb.Grow(len(q) + 8)
	n := 1
	for _, r := range q {
		if r == '?' {
			sb.WriteString("$" + strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// instantLayout tiene ancho fijo: en SQLite el orden de texto coincide con el temporal.
const instantLayout = "2006-01-02T15:04:05.000000000Z"

const dateLayout = "2006-01-02"

// instant codifica un instante para la columna correspondiente (siempre UTC).
func (db *DB) instant(t time.Time) any {
	if db.driver == DriverSQLite {
		return t.UTC().Format(instantLayout)
	}
	return t.UTC()
}

// date codifica una fecha civil como "YYYY-MM-DD" (TEXT en SQLite, DATE en Postgres).
func (db *DB) date(t time.Time) any {
	return t.Format(dateLayout)
}

// instantCol escanea TIMESTAMPTZ (Postgres) o TEXT (SQLite) a time.Time UTC.
type instantCol struct{ t *time.Time }

func (c instantCol) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c.t = v.UTC()
		return nil
	case string:
		return c.parse(v)
	case []byte:
		return c.parse(string(v))
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into instant", src)
	}
}

func (c instantCol) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("sqlstore: bad instant %q: %w", s, err)
	}
	*c.t = t.UTC()
	return nil
}

// dateCol escanea DATE (Postgres) o TEXT (SQLite) a medianoche UTC.
type dateCol struct{ t *time.Time }

func (c dateCol) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case time.Time:
		y, m, d := v.Date()
		*c.t = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into date", src)
	}
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("sqlstore: bad date %q: %w", s, err)
	}
	*c.t = t
	return nil
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

// notFound traduce "0 filas afectadas" al error del dominio.
func notFound(res sql.Result, err error, notFoundErr error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFoundErr
	}
	return nil
}
