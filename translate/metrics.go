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


package translate

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "ncerr"

type metrics struct {
	translations       *prometheus.CounterVec
	lockNoops          *prometheus.CounterVec
	contractViolations *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "translations_total",
				Help:      "Total number of translated validation errors by class",
			},
			[]string{"class"},
		),
		lockNoops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "lock_noops_total",
				Help:      "Total number of lock conflicts without a holder session",
			},
			[]string{"tag"},
		),
		contractViolations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "contract_violations_total",
				Help:      "Total number of classified messages missing a guaranteed field",
			},
			[]string{"class"},
		),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.translations, err = register(reg, m.translations); err != nil {
		return nil, err
	}
	if m.lockNoops, err = register(reg, m.lockNoops); err != nil {
		return nil, err
	}
	if m.contractViolations, err = register(reg, m.contractViolations); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c with reg, reusing an identical collector that is already registered.
func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}
