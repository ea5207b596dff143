package plan

import (
	"encoding/json"
	"io"
	"os"

	"github.com/seatlab/seatplan/pkg/errors"
)

// WritePlanFile writes a plan document to a JSON file.
// The file is created with 0644 permissions.
func WritePlanFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WritePlan(doc, f)
}

// WritePlan writes a plan document as indented JSON to an io.Writer.
func WritePlan(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode plan")
	}
	return nil
}

// ReadPlanFile reads a JSON file and returns the decoded plan document.
func ReadPlanFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadPlan(f)
}

// ReadPlan decodes a JSON plan document from an io.Reader.
func ReadPlan(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan")
	}
	return &doc, nil
}
