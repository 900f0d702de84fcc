/*
 * Copyright (c) 2023. Anton Starikov -- All Rights Reserved
 *
 * This file is part of GEOHEAT project.
 *
 * GEOHEAT is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package db

import (
	_ "embed"

	"github.com/antst/geoheat/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

func OpenDatabase(dbFile string) (*Queries, error) {
	sqlDB, err := sqlx.Open("sqlite3", dbFile+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dbFile)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, errors.Wrapf(err, "ping %s", dbFile)
	}

	sqlDB.SetMaxOpenConns(1)

	// Create tables if they don't exist
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	logger.L().Debugf("Opened DB `%s`", dbFile)
	return New(sqlDB), nil
}
