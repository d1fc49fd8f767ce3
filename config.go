// Copyright 2026 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seqlab

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/zintix-labs/seqlab/errs"
)

type suiteFile struct {
	Experiments []Experiment `yaml:"experiments" json:"experiments"`
}

// SuiteByYAML 讀取 YAML 實驗清單，逐筆驗證後回傳。
func SuiteByYAML(data []byte) ([]Experiment, error) {
	sf := &suiteFile{}
	if err := yaml.Unmarshal(data, sf); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall yaml")
	}
	if err := validateSuite(sf.Experiments); err != nil {
		return nil, err
	}
	return sf.Experiments, nil
}

// ExperimentByJSON 讀取單一實驗的 JSON 描述（HTTP 邊界使用），驗證後回傳。
func ExperimentByJSON(data []byte) (*Experiment, error) {
	e := &Experiment{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall json byte")
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func validateSuite(list []Experiment) error {
	if len(list) == 0 {
		return errs.NewWarn("suite: no experiments")
	}
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return errs.Wrap(err, "suite: experiment "+list[i].Name)
		}
	}
	return nil
}
