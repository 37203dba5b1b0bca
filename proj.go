/*
 * Copyright (c) 2022 The GoPlus Authors (goplus.org). All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package libexe

import (
	"os"
	"path/filepath"

	"github.com/qiniu/x/errors"
	"gopkg.in/yaml.v3"

	jsoniter "github.com/json-iterator/go"
)

const (
	projFile     = "libexe.cfg"
	projYamlFile = "libexe.yaml"

	defaultOut     = "libexe_autogen.go"
	defaultArchive = "libexe.a"
	defaultExpect  = "output.expect"
)

type exeConf struct {
	Pkg     string   `json:"pkg" yaml:"pkg"`         // default: main
	Names   []string `json:"names" yaml:"names"`     // default: abi.CNames
	Out     string   `json:"out" yaml:"out"`         // default: libexe_autogen.go
	Archive string   `json:"archive" yaml:"archive"` // default: libexe.a
	Input   string   `json:"input" yaml:"input"`     // stdin of a test run
	Expect  string   `json:"expect" yaml:"expect"`   // default: output.expect

	dir string
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// findProj returns the project file of dir, if any.
func findProj(dir string) (projfile string, ok bool) {
	for _, name := range []string{projFile, projYamlFile} {
		projfile = filepath.Join(dir, name)
		if isFile(projfile) {
			return projfile, true
		}
	}
	return "", false
}

func loadProj(projfile string) (conf *exeConf, err error) {
	b, err := os.ReadFile(projfile)
	if err != nil {
		err = errors.NewWith(err, `os.ReadFile(projfile)`, -2, "os.ReadFile", projfile)
		return
	}
	conf = new(exeConf)
	switch filepath.Ext(projfile) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(b, conf); err != nil {
			err = errors.NewWith(err, `yaml.Unmarshal(b, conf)`, -2, "yaml.Unmarshal", projfile)
			return
		}
	default:
		if err = json.Unmarshal(b, conf); err != nil {
			err = errors.NewWith(err, `json.Unmarshal(b, conf)`, -2, "json.Unmarshal", projfile)
			return
		}
	}
	conf.dir, _ = filepath.Split(projfile)
	if conf.Pkg == "" {
		conf.Pkg = "main"
	}
	if conf.Out == "" {
		conf.Out = defaultOut
	}
	if conf.Archive == "" {
		conf.Archive = defaultArchive
	}
	if conf.Expect == "" {
		conf.Expect = defaultExpect
	}
	return
}

func (p *exeConf) path(file string) string {
	return canonical(p.dir, file)
}

func canonical(baseDir string, uri string) string {
	if filepath.IsAbs(uri) {
		return uri
	}
	return filepath.Join(baseDir, uri)
}
