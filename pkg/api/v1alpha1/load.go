/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// DecodeArgs decodes a YAML or JSON args document, rejecting unknown fields,
// and applies the defaults. The result is not validated.
func DecodeArgs(data []byte) (*OptimizerArgs, error) {
	args, err := decode(data)
	if err != nil {
		return nil, err
	}
	SetDefaults_OptimizerArgs(args)
	return args, nil
}

// LoadArgs reads and decodes the args file at path and applies the defaults.
// An empty path yields the defaults.
func LoadArgs(path string) (*OptimizerArgs, error) {
	args, err := ReadArgs(path)
	if err != nil {
		return nil, err
	}
	SetDefaults_OptimizerArgs(args)
	return args, nil
}

// ReadArgs reads and decodes the args file at path without defaulting, so
// that callers can override fields first. An empty path yields empty args.
func ReadArgs(path string) (*OptimizerArgs, error) {
	if path == "" {
		return &OptimizerArgs{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading optimizer args: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (*OptimizerArgs, error) {
	args := &OptimizerArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding optimizer args: %w", err)
	}
	return args, nil
}

// Marshal encodes args as YAML.
func Marshal(args *OptimizerArgs) ([]byte, error) {
	return yaml.Marshal(args)
}
