package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindDuplicate
	KindForeignKey
)

// Classify распознаёт ошибки драйверов. ok=false — это не ошибка БД.
func Classify(err error) (kind ErrorKind, detail string, ok bool) {
	if err == nil {
		return KindOther, "", false
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return KindDuplicate, me.Message, true
		case 1451, 1452:
			return KindForeignKey, me.Message, true
		}
		return KindOther, me.Message, true
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case "23505":
			return KindDuplicate, pe.Message, true
		case "23503":
			return KindForeignKey, pe.Message, true
		}
		return KindOther, pe.Message, true
	}

	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return KindDuplicate, se.Error(), true
		case sqlite3.ErrConstraintForeignKey:
			return KindForeignKey, se.Error(), true
		}
		return KindOther, se.Error(), true
	}

	return KindOther, "", false
}

func IsDuplicate(err error) bool {
	k, _, ok := Classify(err)
	return ok && k == KindDuplicate
}
