// Package db embeds the database schema applied on startup.
package db

import _ "embed"

// Schema holds the DDL for the products and orders tables.
//
//go:embed migrations/001_schema.sql
var Schema string
