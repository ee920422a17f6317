/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Platform string

const (
	PlatformWeb     Platform = "Web"
	PlatformIOS     Platform = "iOS"
	PlatformAndroid Platform = "Android"
	PlatformDesktop Platform = "Desktop"
	PlatformOther   Platform = "Other"
)

var Platforms = []Platform{PlatformWeb, PlatformIOS, PlatformAndroid, PlatformDesktop, PlatformOther}

type AppStatus string

const (
	StatusIdea          AppStatus = "Idea"
	StatusPlanning      AppStatus = "Planning"
	StatusInDevelopment AppStatus = "InDevelopment"
	StatusTesting       AppStatus = "Testing"
	StatusReleased      AppStatus = "Released"
	StatusArchived      AppStatus = "Archived"
)

var AppStatuses = []AppStatus{
	StatusIdea, StatusPlanning, StatusInDevelopment, StatusTesting, StatusReleased, StatusArchived,
}

// App is an entry in the portfolio tracker. Optional fields are nil when unset.
type App struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description,omitempty"`
	Platforms            []Platform       `json:"platforms"`
	Status               *AppStatus       `json:"status"`
	UserCount            *int64           `json:"userCount"`
	MonthlyRevenue       *decimal.Decimal `json:"monthlyRevenue"`
	DevelopmentStartDate *time.Time       `json:"developmentStartDate"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            *time.Time       `json:"updatedAt,omitempty"`
}

// Metric is one point of an app's time series, stored under apps/{appId}/metrics.
type Metric struct {
	ID              string          `json:"id"`
	AppID           string          `json:"appId"`
	MetricTimestamp *time.Time      `json:"metricTimestamp"`
	UserCount       int64           `json:"userCount"`
	MonthlyRevenue  decimal.Decimal `json:"monthlyRevenue"`
}
