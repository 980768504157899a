package database

import (
	"ramadan-meal-recommender/structs"
	"testing"
)

func TestDSN(t *testing.T) {
	config := structs.Database{User: "root", Password: "secret", Host: "127.0.0.1", Port: "3306", Db: "meals"}
	if got, want := DSN(config), "root:secret@tcp(127.0.0.1:3306)/meals"; got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}

	config.Params = "charset=utf8mb4&parseTime=True&loc=Local"
	if got, want := DSN(config), "root:secret@tcp(127.0.0.1:3306)/meals?charset=utf8mb4&parseTime=True&loc=Local"; got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestInitDatabasePool_UnknownClient(t *testing.T) {
	if _, err := InitDatabasePool(structs.Database{Client: "nosuchdb"}); err == nil {
		t.Fatal("expected error for unregistered client")
	}
}
