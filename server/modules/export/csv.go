package export

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/modules/generator"
	"github.com/casegen/casegen/server/models"
	"github.com/pkg/errors"
)

var (
	ErrEmptyCSV        = errors.New("CSV file is empty")
	ErrMissingTitle    = errors.New("CSV header has no Title column")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidTestType = errors.New("invalid test type")
	ErrInvalidPriority = errors.New("invalid priority")
)

func WriteCSV(w io.Writer, cases []models.TestCase) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers(columns)); err != nil {
		return errors.WithStack(err)
	}
	for i := range cases {
		if err := cw.Write(values(columns, &cases[i])); err != nil {
			return errors.WithStack(err)
		}
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}

// ReadCSV reads rows with the headers Title, Description, Test Type, Priority and
// Expected Output. Other columns are ignored, so an exported file can be imported again.
// The returned records have no owner.
func ReadCSV(r io.Reader) ([]*models.TestCase, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse CSV header")
	}

	index := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		index[h] = i
	}
	if _, ok := index["Title"]; !ok {
		return nil, ErrMissingTitle
	}

	get := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || len(record) <= i {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	cases := make([]*models.TestCase, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parse CSV")
		}
		if isBlank(record) {
			continue
		}

		title := get(record, "Title")
		if title == "" {
			return nil, errors.Wrapf(ErrTitleRequired, "line %v", line)
		}
		testType := strings.ToLower(conf.DefaultString(get(record, "Test Type"), generator.TypeFunctional))
		if !models.IsValidTestType(testType) {
			return nil, errors.Wrapf(ErrInvalidTestType, "line %v: %q", line, testType)
		}
		priority := strings.ToLower(conf.DefaultString(get(record, "Priority"), generator.PriorityMedium))
		if !models.IsValidPriority(priority) {
			return nil, errors.Wrapf(ErrInvalidPriority, "line %v: %q", line, priority)
		}

		cases = append(cases, &models.TestCase{
			Title:          title,
			Description:    get(record, "Description"),
			TestType:       testType,
			Priority:       priority,
			ExpectedOutput: get(record, "Expected Output"),
		})
	}
	return cases, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
