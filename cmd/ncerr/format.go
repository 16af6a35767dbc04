// Copyright 2025 Poiesic Systems
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


package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/ncerr/core"
	"github.com/poiesic/ncerr/grpcerr"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

type errorView struct {
	Type    string     `yaml:"error-type"`
	Tag     string     `yaml:"error-tag"`
	AppTag  string     `yaml:"error-app-tag,omitempty"`
	Path    string     `yaml:"error-path,omitempty"`
	Message string     `yaml:"error-message"`
	Info    []infoView `yaml:"error-info,omitempty"`
}

type infoView struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

func checkFormat(format string) error {
	if format != formatText && format != formatYAML {
		return fmt.Errorf("invalid format %q: must be one of text, yaml", format)
	}
	return nil
}

func writeErrors(w io.Writer, format string, errs []*core.ProtocolError) error {
	if format == formatYAML {
		views := make([]errorView, len(errs))
		for i, perr := range errs {
			views[i] = newErrorView(perr)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("failed to encode errors: %w", err)
		}
		return enc.Close()
	}

	if len(errs) == 0 {
		_, err := fmt.Fprintln(w, "no errors")
		return err
	}
	for i, perr := range errs {
		if _, err := fmt.Fprintln(w, formatError(i, perr)); err != nil {
			return err
		}
	}
	return nil
}

func newErrorView(perr *core.ProtocolError) errorView {
	view := errorView{
		Type:    string(perr.Type),
		Tag:     perr.Tag,
		AppTag:  perr.AppTag,
		Path:    perr.Path,
		Message: perr.Message,
	}
	for _, info := range perr.Info {
		view.Info = append(view.Info, infoView{Name: info.Name, Value: info.Value})
	}
	return view
}

// formatError renders one error on a line, e.g.
// 0: [protocol] lock-denied (FailedPrecondition): Access ... session-id=7
func formatError(i int, perr *core.ProtocolError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: [%s] %s", i, perr.Type, perr.Tag)
	if perr.AppTag != "" {
		fmt.Fprintf(&b, "/%s", perr.AppTag)
	}
	fmt.Fprintf(&b, " (%s): %s", grpcerr.Code(perr.Tag), perr.Message)
	if perr.Path != "" {
		fmt.Fprintf(&b, " path=%s", perr.Path)
	}
	for _, info := range perr.Info {
		fmt.Fprintf(&b, " %s=%s", info.Name, info.Value)
	}
	return b.String()
}

// writeMetrics prints every non-zero counter gathered from reg.
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			value := metric.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				labels = append(labels, pair.GetName()+"="+pair.GetValue())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", family.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}
