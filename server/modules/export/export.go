// Package export writes test cases as CSV or Excel and reads them back from CSV.
package export

import (
	"github.com/casegen/casegen/server/models"
)

const (
	CSVContentType   = "text/csv"
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	CSVFileName   = "test-cases.csv"
	ExcelFileName = "test-cases.xlsx"

	createdAtLayout = "2006-01-02"
)

type column struct {
	header string
	width  float64
	value  func(c *models.TestCase) string
}

var columns = []column{
	{"Test Case ID", 15, func(c *models.TestCase) string { return c.DisplayID() }},
	{"Title", 30, func(c *models.TestCase) string { return c.Title }},
	{"Description", 50, func(c *models.TestCase) string { return c.Description }},
	{"Test Type", 15, func(c *models.TestCase) string { return c.TestType }},
	{"Priority", 10, func(c *models.TestCase) string { return c.Priority }},
	{"Status", 15, func(c *models.TestCase) string { return c.Status }},
	{"Assigned To", 20, func(c *models.TestCase) string { return c.AssigneeName() }},
	{"Expected Output", 40, func(c *models.TestCase) string { return c.ExpectedOutput }},
}

// createdAtColumn is only written to Excel.
var createdAtColumn = column{"Created At", 20, func(c *models.TestCase) string { return c.CreatedAt.Format(createdAtLayout) }}

func headers(cols []column) []string {
	res := make([]string, len(cols))
	for i, col := range cols {
		res[i] = col.header
	}
	return res
}

func values(cols []column, c *models.TestCase) []string {
	res := make([]string, len(cols))
	for i, col := range cols {
		res[i] = col.value(c)
	}
	return res
}
