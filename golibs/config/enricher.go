// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/welbornprod/timedop/golibs/errors"
	"github.com/welbornprod/timedop/golibs/logging"
)

type (
	// Enricher interface provides some helper functions to work with the configuration
	// structures. It keeps a structure value of the type T and allows to load the value
	// from a file, overlay it by the value of another enricher, created for the same
	// type T, and apply environment variables on top of the structure.
	//
	// The following contract is applied to the type T:
	// - only the exported fields (started from the capital letter) will be updated
	// - a field may have the JSON annotation, where the JSON field name can be used as
	//   an alias, for example, FieldA int `json:"abc"` <- the field may be addressed
	//   either as "fieldA" or "abc"
	// - all the fields' names are case-insensitive, so values FIELDA, fielda, ABC, abc
	//   etc. will match the field in the previous example
	// - the reading from YAML files is defined by the same (JSON name) annotations
	Enricher[T any] interface {
		// LoadFromFile allows to load the structure's fields from a YAML or JSON file.
		// Which format is used, is defined by the file extension (.json, .yaml or .yml)
		LoadFromFile(fileName string) error

		// LoadFromJSONFile reads the jsonFileName content and unmarshals it as JSON.
		// If the jsonFileName is empty, nothing happens and the function immediately
		// returns nil. If the file doesn't exist, the function returns the
		// errors.ErrNotExist class, otherwise nil or the unmarshalling error.
		LoadFromJSONFile(jsonFileName string) error

		// LoadFromYAMLFile reads the yamlFileName content and unmarshals it as YAML.
		// Same contract as for LoadFromJSONFile, but for the YAML format.
		LoadFromYAMLFile(yamlFileName string) error

		// ApplyOther overlays the current value by the value of the enricher e. The
		// deep apply is done - all the fields of e's value, which are not equal to
		// their zero values, overwrite the fields of the current enricher value.
		ApplyOther(e Enricher[T]) error

		// ApplyEnvVariables scans the process environment and applies the variables
		// which names start from the prefix. A variable name is a path to the field
		// in the target structure, the path elements are separated by sep:
		//
		//	type Inner struct {
		//		Val    int
		//		StrPtr *string `json:"haha"`
		//	}
		//	type T struct {
		//		Field  int
		//		InnerS *Inner
		//	}
		//
		// for ApplyEnvVariables("MyServer", "_") the following variables make sense:
		// MYSERVER_FIELD, MYSERVER_INNERS_VAL, MYSERVER_INNERS_STRPTR or
		// MYSERVER_INNERS_HAHA (the alias). The names are case-insensitive.
		//
		// The values should be JSON values. For simple types like numbers or strings
		// the plain form is fine (123, hello world), the complex types (slices, maps,
		// structs) are expected in the JSON form: MYSERVER_INNERS={"val": 123}
		ApplyEnvVariables(prefix, sep string) error

		// ApplyKeyValues applies the key-value pairs to the structure. The keys
		// assignment rules are the same as for the ApplyEnvVariables function.
		ApplyKeyValues(prefix, sep string, keyValues map[string]string)

		// Value returns the enricher current value
		Value() T
	}

	enricher[T any] struct {
		log logging.Logger
		val T
	}
)

// NewEnricher constructs new Enricher for the type T, which must be a struct
func NewEnricher[T any](val T) Enricher[T] {
	if tp := reflect.TypeOf(val); tp.Kind() != reflect.Struct {
		panic(fmt.Sprintf("only structs are acceptable in the Enricher, but got the type %s", tp.Kind()))
	}
	return newEnricher(val)
}

func newEnricher[T any](val T) *enricher[T] {
	e := new(enricher[T])
	e.val = val
	e.log = logging.NewLogger("config.enricher." + reflect.TypeOf(val).Name())
	return e
}

func (e *enricher[T]) LoadFromFile(fileName string) error {
	if fileName == "" {
		e.log.Debugf("no file name is provided, skipping the file load")
		return nil
	}

	fn := strings.ToLower(strings.TrimSpace(fileName))
	switch {
	case strings.HasSuffix(fn, ".yaml") || strings.HasSuffix(fn, ".yml"):
		return e.LoadFromYAMLFile(fileName)
	case strings.HasSuffix(fn, ".json"):
		return e.LoadFromJSONFile(fileName)
	}
	return fmt.Errorf("cannot recognize file format %s, expecting .json, .yaml or .yml: %w", fileName, errors.ErrInvalid)
}

func (e *enricher[T]) LoadFromJSONFile(jsonFileName string) error {
	if jsonFileName == "" {
		return nil
	}

	e.log.Infof("reading JSON data from %s", jsonFileName)
	buf, err := readFile(jsonFileName)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(buf, &e.val); err != nil {
		return fmt.Errorf("could not unmarshal json file(%s): %w", jsonFileName, err)
	}
	return nil
}

func (e *enricher[T]) LoadFromYAMLFile(yamlFileName string) error {
	if yamlFileName == "" {
		return nil
	}

	e.log.Infof("reading YAML data from %s", yamlFileName)
	buf, err := readFile(yamlFileName)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(buf, &e.val); err != nil {
		return fmt.Errorf("could not unmarshal yaml file(%s): %w", yamlFileName, err)
	}
	return nil
}

func (e *enricher[T]) ApplyOther(other Enricher[T]) error {
	otherE, ok := other.(*enricher[T])
	if !ok {
		return fmt.Errorf("unsupported Enricher implementation %T: %w", other, errors.ErrInvalid)
	}
	return overlay(reflect.ValueOf(&otherE.val), reflect.ValueOf(&e.val))
}

func (e *enricher[T]) ApplyEnvVariables(prefix, sep string) error {
	e.log.Infof("applying environment variables with the prefix %s", prefix)
	env := make(map[string]string)
	for _, v := range os.Environ() {
		name, value, ok := strings.Cut(v, "=")
		if !ok {
			e.log.Warnf("the environment variable %s is not valid, skip it", v)
			continue
		}
		env[name] = value
	}
	e.ApplyKeyValues(prefix, sep, env)
	return nil
}

func (e *enricher[T]) ApplyKeyValues(prefix, sep string, keyValues map[string]string) {
	sep = strings.ToUpper(sep)
	pfx := ""
	if prefix != "" {
		pfx = strings.ToUpper(prefix) + sep
	}
	for key, value := range keyValues {
		key = strings.ToUpper(key)
		if !strings.HasPrefix(key, pfx) {
			continue
		}
		ok := e.assignPath(&e.val, key[len(pfx):], sep, value)
		e.log.Debugf("applying the key=%s, value=%s: %t", key, value, ok)
	}
}

func (e *enricher[T]) Value() T {
	return e.val
}

func readFile(fileName string) ([]byte, error) {
	buf, err := os.ReadFile(fileName)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("the file %s: %w", fileName, errors.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", fileName, err)
	}
	return buf, nil
}

// overlay applies all non-zero fields of the other value on top of the target
// one. Both the values must be addressable pointers of the same type.
func overlay(other, target reflect.Value) error {
	if other.IsZero() {
		return nil
	}
	if other.Type().Kind() == reflect.Ptr {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		return overlay(other.Elem(), target.Elem())
	}
	if other.Type().Kind() != reflect.Struct {
		target.Set(other)
		return nil
	}
	for fi := 0; fi < other.NumField(); fi++ {
		if err := overlay(other.Field(fi), target.Field(fi)); err != nil {
			return err
		}
	}
	return nil
}

// assignPath assigns the field addressed by the path to the value v, which is a
// JSON-encoded string. s must be a pointer to a structure. The path contains the
// names of fields or their aliases (json:"name,..." annotation) separated by sep,
// in the upper case. The objects in the path, which are nil pointers, are created,
// but only if the whole path is found and the value is assigned.
//
// It returns true if the value was found and set, or false if the path was not
// found. The function panics if the path hits a non-settable field.
func (e *enricher[T]) assignPath(s any, path, sep string, v string) bool {
	tp := reflect.TypeOf(s)
	if tp.Kind() != reflect.Ptr || tp.Elem().Kind() != reflect.Struct {
		e.log.Warnf("could not assign a value to the non-structure type %s", tp)
		return false
	}

	fieldName, rest, _ := strings.Cut(path, sep)
	if fieldName == "" {
		e.log.Warnf("could not assign a value for the empty field name (path=%s)", path)
		return false
	}

	val := reflect.ValueOf(s).Elem()
	for fi := 0; fi < val.NumField(); fi++ {
		sf := tp.Elem().Field(fi)
		if fieldName != strings.ToUpper(sf.Name) && fieldName != fieldAlias(sf) {
			continue
		}
		f := val.Field(fi)
		if rest == "" {
			if !f.CanSet() {
				panic(fmt.Sprintf("could not set value to the field %s, it is not settable", sf.Name))
			}
			if err := assignLeaf(f, v); err != nil {
				panic(fmt.Sprintf("could not set value %s to the field %s: %s", v, sf.Name, err))
			}
			return true
		}
		// walk down creating the intermediate objects if needed
		obj := f.Interface()
		oType := reflect.TypeOf(obj)
		if oType.Kind() != reflect.Ptr {
			objPtr := reflect.New(oType)
			objPtr.Elem().Set(reflect.ValueOf(obj))
			if e.assignPath(objPtr.Interface(), rest, sep, v) {
				f.Set(objPtr.Elem())
				return true
			}
			return false
		}
		if reflect.ValueOf(obj).IsNil() {
			obj = reflect.New(oType.Elem()).Interface()
		}
		if e.assignPath(obj, rest, sep, v) {
			f.Set(reflect.ValueOf(obj))
			return true
		}
		return false
	}
	return false
}

// assignLeaf receives a field value and a string which should be assigned to it.
// Numerical and string values are supported as is, all other types should be
// provided in the JSON form: `["aaa", "bbb"]` for []string, `{"1": "sss"}` for
// map[int]string etc.
func assignLeaf(field reflect.Value, s string) error {
	if len(s) == 0 {
		return nil
	}

	if isStringKind(field.Type()) && !isQuoted(s) {
		s = strconv.Quote(s)
	}
	obj := reflect.New(field.Type()).Interface()
	if err := json.Unmarshal([]byte(s), obj); err != nil {
		return err
	}
	field.Set(reflect.ValueOf(obj).Elem())
	return nil
}

// fieldAlias returns the upper-cased name from the field json:"..." annotation,
// or the empty string if the field is not annotated
func fieldAlias(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return strings.ToUpper(name)
}

func isQuoted(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"'
}

func isStringKind(tp reflect.Type) bool {
	if tp.Kind() == reflect.Ptr {
		return isStringKind(tp.Elem())
	}
	return tp.Kind() == reflect.String
}
