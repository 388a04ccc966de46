package aws

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type DBI struct {
	User     string
	Password string
	Endpoint string
	Port     int
	Database string
}

// DSN은 접속 문자열을 만듭니다. (토큰 스토리지 등 sqlx 밖에서도 필요)
func (i DBI) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		i.User, i.Password, i.Endpoint, i.Port, i.Database)
}

func CreateConnection(i DBI) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", i.DSN())
	if err != nil {
		return nil, err
	}

	return db, nil
}
