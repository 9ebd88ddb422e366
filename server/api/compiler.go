package api

import (
	"fmt"
	"path/filepath"

	"github.com/consensys/gnark/frontend"
	"github.com/mynextid/zk-base64/common"
)

// Field describes one JSON input field of a circuit
type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "base64", "base64url" or "hex"
	Size        int    `json:"size"` // characters for base64, bytes for hex
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// CircuitInfo describes a circuit available for compilation and serving
type CircuitInfo struct {
	Circuit     frontend.Circuit
	Dir         string
	Name        string
	Version     uint
	Description string
	InputParser InputParser
	Fields      []Field
}

// SetupPaths returns the constraint system, proving key and verifying key
// paths of the circuit. Compressed paths carry the common.CompressedExt suffix.
func (ci CircuitInfo) SetupPaths(compress bool) (ccsPath, pkPath, vkPath string) {
	ext := ""
	if compress {
		ext = common.CompressedExt
	}
	ccsPath = filepath.Join(ci.Dir, fmt.Sprintf("%s-%d.ccs%s", ci.Name, ci.Version, ext))
	pkPath = filepath.Join(ci.Dir, fmt.Sprintf("%s-%d.pk%s", ci.Name, ci.Version, ext))
	vkPath = filepath.Join(ci.Dir, fmt.Sprintf("%s-%d.vk%s", ci.Name, ci.Version, ext))
	return ccsPath, pkPath, vkPath
}

// Compile compiles a circuit and stores the circuit information locally
func (ci CircuitInfo) Compile(compress bool) error {
	ccsPath, pkPath, vkPath := ci.SetupPaths(compress)
	return common.SetupAndSave(ci.Circuit, ccsPath, pkPath, vkPath)
}

// PublicFields returns the public input fields
func (ci CircuitInfo) PublicFields() []Field {
	var fields []Field
	for _, f := range ci.Fields {
		if f.IsPublic {
			fields = append(fields, f)
		}
	}
	return fields
}

// PrivateFields returns the private input fields
func (ci CircuitInfo) PrivateFields() []Field {
	var fields []Field
	for _, f := range ci.Fields {
		if !f.IsPublic {
			fields = append(fields, f)
		}
	}
	return fields
}
