package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"github.com/google/uuid"

	"github.com/kennel-io/kennel/internal/repo"
)

// LoadError represents an error that occurred while loading a manifest
// directory, before validation.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load error codes.
const (
	ErrCodeNotFound    = "L001" // path not found or not a directory
	ErrCodeNoFiles     = "L002" // no CUE files found
	ErrCodeLoadFailed  = "L003" // CUE load failed
	ErrCodeBuildFailed = "L004" // CUE build failed
	ErrCodeDecode      = "L005" // declaration does not match the schema
)

// LoadDir loads every CUE file in dir into a Manifest. Objects declared
// without an id get a generated uuid so they are insertable as-is.
// LoadDir does not validate hierarchy consistency; see Validate.
func LoadDir(dir string) (*Manifest, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	m := &Manifest{}
	if err := extractClasses(value, m); err != nil {
		return nil, err
	}
	if err := extractObjects(value, m); err != nil {
		return nil, err
	}
	return m, nil
}

func extractClasses(value cue.Value, m *Manifest) error {
	classesVal := value.LookupPath(cue.ParsePath("class"))
	if !classesVal.Exists() {
		return nil
	}
	iter, err := classesVal.Fields()
	if err != nil {
		return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("iterating classes: %v", err)}
	}
	for iter.Next() {
		var decl struct {
			Extends []string `json:"extends"`
		}
		if err := iter.Value().Decode(&decl); err != nil {
			return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("class %s: %v", iter.Label(), err)}
		}
		m.Classes = append(m.Classes, Class{Name: iter.Label(), Extends: decl.Extends})
	}
	return nil
}

func extractObjects(value cue.Value, m *Manifest) error {
	objectsVal := value.LookupPath(cue.ParsePath("object"))
	if !objectsVal.Exists() {
		return nil
	}
	iter, err := objectsVal.List()
	if err != nil {
		return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("object declarations must form a list: %v", err)}
	}
	for i := 0; iter.Next(); i++ {
		var decl struct {
			Class  string         `json:"class"`
			ID     string         `json:"id"`
			Fields map[string]any `json:"fields"`
		}
		if err := iter.Value().Decode(&decl); err != nil {
			return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("object[%d]: %v", i, err)}
		}
		if decl.Class == "" {
			return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("object[%d]: missing class", i)}
		}
		id := repo.ID(decl.ID)
		if id == "" {
			id = repo.ID(uuid.Must(uuid.NewV7()).String())
		}
		m.Objects = append(m.Objects, Object{Class: decl.Class, ID: id, Fields: decl.Fields})
	}
	return nil
}

func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
