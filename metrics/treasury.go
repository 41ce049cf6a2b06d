// Copyright 2025 The govkit Authors
// This file is part of the govkit library.
//
// The govkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govkit library. If not, see <http://www.gnu.org/licenses/>.

package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type TreasuryMetrics struct {
	Deposits             metrics.Counter
	Spends               metrics.Counter
	EmergencyWithdrawals metrics.Counter
}

func PromTreasuryMetrics() *TreasuryMetrics {
	return &TreasuryMetrics{
		Deposits: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TreasurySubsystem,
			Name:      "deposits_total",
			Help:      "Total number of funding operations.",
		}, nil),
		Spends: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TreasurySubsystem,
			Name:      "spends_total",
			Help:      "Total number of proposal payouts.",
		}, nil),
		EmergencyWithdrawals: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TreasurySubsystem,
			Name:      "emergency_withdrawals_total",
			Help:      "Total number of emergency withdrawals.",
		}, nil),
	}
}

func NopTreasuryMetrics() *TreasuryMetrics {
	return &TreasuryMetrics{
		Deposits:             discard.NewCounter(),
		Spends:               discard.NewCounter(),
		EmergencyWithdrawals: discard.NewCounter(),
	}
}
