// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

// csvColumns is the layout the prediction notebooks read from lib/data.csv.
var csvColumns = []string{
	"date", "name", "scored", "id", "gpg", "hgpg", "five_gpg", "hppg",
	"tgpg", "otga", "otshga", "home", "tims",
}

// writeCSV writes one row per player. Missing or null fields are empty.
func writeCSV(w io.Writer, players []models.Player) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(csvColumns))
	for _, p := range players {
		for i, col := range csvColumns {
			row[i] = csvValue(p[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
