package controllers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/casegen/casegen/server/logger"
	"github.com/casegen/casegen/server/models"
	"github.com/casegen/casegen/server/modules/export"
	"github.com/labstack/echo/v4"
)

const maxImportSize = 10 << 20

type importResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func ExportCSV(c echo.Context) error {
	return exportTestCases(c, export.CSVContentType, export.CSVFileName, export.WriteCSV)
}

func ExportExcel(c echo.Context) error {
	return exportTestCases(c, export.ExcelContentType, export.ExcelFileName, export.WriteExcel)
}

func exportTestCases(c echo.Context, contentType, fileName string, write func(w io.Writer, cases []models.TestCase) error) error {
	s := getSession(c)
	cases, err := models.GetTestCases(s.UserID, models.TestCaseFilter{})
	if err != nil {
		logger.AppLog.Errorf("export error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error exporting test cases", err.Error()})
	}
	if len(cases) == 0 {
		return c.JSON(http.StatusNotFound, ErrorResponse{"No test cases found to export"})
	}

	buf := &bytes.Buffer{}
	if err := write(buf, cases); err != nil {
		logger.AppLog.Errorf("export error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error exporting test cases", err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func ImportCSV(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{"No file uploaded"})
	}
	if maxImportSize < fh.Size {
		return c.JSON(http.StatusBadRequest, ErrorResponse{"File is too large"})
	}

	f, err := fh.Open()
	if err != nil {
		logger.AppLog.Errorf("import error: %+v", err)
		return ErrInternalServer
	}
	defer f.Close()

	cases, err := export.ReadCSV(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailedErrorResponse{"Error parsing CSV file", err.Error()})
	}

	s := getSession(c)
	for _, tc := range cases {
		tc.CreatedByID = s.UserID
	}
	if err := models.NewTestCases(cases); err != nil {
		logger.AppLog.Errorf("import error: %+v", err)
		return c.JSON(http.StatusInternalServerError, detailedErrorResponse{"Error saving imported test cases", err.Error()})
	}

	return c.JSON(http.StatusCreated, importResponse{
		Message: fmt.Sprintf("%v test cases imported successfully", len(cases)),
		Count:   len(cases),
	})
}
