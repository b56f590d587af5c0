package database

import "testing"

func TestDSN(t *testing.T) {
	cfg := Config{User: "roster", Password: "s3cret", Host: "127.0.0.1", Port: "3306", Name: "roster"}
	want := "roster:s3cret@tcp(127.0.0.1:3306)/roster?charset=utf8mb4&parseTime=true&loc=UTC"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestDSNOmitsEmptyPassword(t *testing.T) {
	cfg := Config{User: "roster", Host: "localhost", Port: "3306", Name: "roster"}
	want := "roster@tcp(localhost:3306)/roster?charset=utf8mb4&parseTime=true&loc=UTC"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}
