// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fault classifies the compile pipeline's fatal conditions into the
// kinds named in the error handling design, and maps each kind to the
// process exit code a CLI verb should return.
package fault

// Kind identifies which of the pipeline's fatal error categories an Error
// belongs to.
type Kind int

const (
	// Unknown is the zero Kind, used for errors this package did not wrap.
	Unknown Kind = iota
	// ParseError: the textual map cannot be tokenized, or a brush has fewer
	// than 4 valid sides, or a plane is degenerate.
	ParseError
	// GeometryOverflow: a generated winding exceeds the per-polygon vertex
	// cap after T-junction repair in a way that cannot be fragmented.
	GeometryOverflow
	// DialectOverflow: a lump element count exceeds the chosen dialect's
	// maximum representable value.
	DialectOverflow
	// Leak: an entity-occupied leaf is reachable from the void outside the
	// world.
	Leak
	// ContentConflict: two brushes of incompatible classes overlap in a way
	// CSG cannot resolve deterministically; resolved by "later wins" and
	// surfaced only as a warning, never returned as a fatal Kind, but kept
	// here so callers can recognize and count it.
	ContentConflict
	// IoError: underlying storage failure on read or write.
	IoError
	// OracleError: the occlusion oracle failed to initialize.
	OracleError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case GeometryOverflow:
		return "GeometryOverflow"
	case DialectOverflow:
		return "DialectOverflow"
	case Leak:
		return "Leak"
	case ContentConflict:
		return "ContentConflict"
	case IoError:
		return "IoError"
	case OracleError:
		return "OracleError"
	}
	return "Unknown"
}

// ExitCode returns the process exit code spec.md §6 assigns to k, or 1
// (usage) for kinds with no dedicated code.
func (k Kind) ExitCode() int {
	switch k {
	case ParseError:
		return 2
	case Leak:
		return 3
	case DialectOverflow:
		return 4
	case IoError, OracleError:
		return 5
	default:
		return 1
	}
}
