package entities

import "time"

type School struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SchoolConfig struct {
	ConfigKey   string `db:"config_key"`
	ConfigValue string `db:"config_value"`
}
