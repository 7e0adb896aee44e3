package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// Persona is the persona value from the input JSON. It accepts either a plain
// string or an object with a "role" field.
type Persona string

// UnmarshalJSON implements json.Unmarshaler.
func (p *Persona) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Persona(s)
		return nil
	}
	var obj struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("persona must be a string or an object with a role field: %w", err)
	}
	*p = Persona(obj.Role)
	return nil
}

// Job is the job-to-be-done value from the input JSON. It accepts either a
// plain string or an object with a "task" field.
type Job string

// UnmarshalJSON implements json.Unmarshaler.
func (j *Job) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*j = Job(s)
		return nil
	}
	var obj struct {
		Task string `json:"task"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("job_to_be_done must be a string or an object with a task field: %w", err)
	}
	*j = Job(obj.Task)
	return nil
}

// DocumentRef names one PDF in the input document list.
type DocumentRef struct {
	Filename string `json:"filename"`
}

// Input is the analysis request read from the input JSON file.
type Input struct {
	Documents []DocumentRef `json:"documents"`
	Persona   Persona       `json:"persona"`
	Job       Job           `json:"job_to_be_done"`
}

// LoadInput reads and parses the input JSON file at path.
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return &in, nil
}

// Validate checks that both persona and job are present.
func (in *Input) Validate() error {
	if in.Persona == "" || in.Job == "" {
		return fmt.Errorf("persona or job information missing from input")
	}
	return nil
}
