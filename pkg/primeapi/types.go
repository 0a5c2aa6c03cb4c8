/*
 * Copyright 2025 Carver Automation Corporation.
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

package primeapi

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/carverauto/routerpoller/pkg/models"
)

// list decodes either a JSON array or a single object into a slice. Prime
// collapses one-element arrays on some endpoints.
type list[T any] []T

func (l *list[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	if len(b) > 0 && b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}

		*l = items

		return nil
	}

	var item T
	if err := json.Unmarshal(b, &item); err != nil {
		return err
	}

	*l = list[T]{item}

	return nil
}

func (l list[T]) first() (*T, bool) {
	if len(l) == 0 {
		return nil, false
	}

	return &l[0], true
}

// text is a scalar rendered as a string. Numbers keep their literal form;
// objects and arrays decode to "".
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch x := v.(type) {
	case string:
		*t = text(x)
	case json.Number:
		*t = text(x.String())
	case bool:
		*t = text(strconv.FormatBool(x))
	default:
		*t = ""
	}

	return nil
}

// raw returns the value and whether the field was present at all.
func (t *text) raw() (string, bool) {
	if t == nil {
		return "", false
	}

	return string(*t), true
}

func (t *text) ptr() *string {
	if t == nil {
		return nil
	}

	return models.StringPtr(string(*t))
}

// queryEnvelope is the "data/" resource wrapper.
type queryEnvelope[T any] struct {
	QueryResponse *queryResponse[T] `json:"queryResponse"`
}

type queryResponse[T any] struct {
	EntityID list[entityRef] `json:"entityId"`
	Entity   list[T]         `json:"entity"`
}

type entityRef struct {
	URL string `json:"@url"`
}

func (e *queryEnvelope[T]) firstEntity() (*T, bool) {
	if e.QueryResponse == nil {
		return nil, false
	}

	return e.QueryResponse.Entity.first()
}

func (e *queryEnvelope[T]) entityRefs() []entityRef {
	if e.QueryResponse == nil {
		return nil
	}

	return e.QueryResponse.EntityID
}

// deviceEntity is one element of data/Devices/{id}.json.
type deviceEntity struct {
	DevicesDTO *devicesDTO `json:"devicesDTO"`
}

type devicesDTO struct {
	IPAddress           *text                `json:"ipAddress"`
	CollectionStatus    *text                `json:"collectionStatus"`
	CollectionTime      *text                `json:"collectionTime"`
	ManufacturerPartNrs *manufacturerPartNrs `json:"manufacturerPartNrs"`
	SoftwareVersion     *text                `json:"softwareVersion"`
	DeviceName          *text                `json:"deviceName"`
	Location            *text                `json:"location"`
	Reachability        *text                `json:"reachability"`
}

type manufacturerPartNrs struct {
	ManufacturerPartNr list[manufacturerPartNr] `json:"manufacturerPartNr"`
}

type manufacturerPartNr struct {
	SerialNumber *text `json:"serialNumber"`
	PartNumber   *text `json:"partNumber"`
}

func (d *devicesDTO) partNr() (*manufacturerPartNr, bool) {
	if d.ManufacturerPartNrs == nil {
		return nil, false
	}

	return d.ManufacturerPartNrs.ManufacturerPartNr.first()
}

// inventoryEntity is one element of data/InventoryDetails/{id}.json.
type inventoryEntity struct {
	InventoryDetailsDTO *struct {
		Summary *struct {
			UpTime *text `json:"upTime"`
		} `json:"summary"`
	} `json:"inventoryDetailsDTO"`
}

func (e *inventoryEntity) upTime() (*text, bool) {
	if e.InventoryDetailsDTO == nil || e.InventoryDetailsDTO.Summary == nil || e.InventoryDetailsDTO.Summary.UpTime == nil {
		return nil, false
	}

	return e.InventoryDetailsDTO.Summary.UpTime, true
}

// statisticsEnvelope is the "op/statisticsService" wrapper.
type statisticsEnvelope struct {
	MgmtResponse *struct {
		StatisticsDTO list[statisticsDTO] `json:"statisticsDTO"`
	} `json:"mgmtResponse"`
}

type statisticsDTO struct {
	ChildStatistics *struct {
		ChildStatistic list[childStatistic] `json:"childStatistic"`
	} `json:"childStatistics"`
}

type childStatistic struct {
	StatisticEntries *struct {
		StatisticEntry list[statisticEntry] `json:"statisticEntry"`
	} `json:"statisticEntries"`
}

type statisticEntry struct {
	EntryValue *text `json:"entryValue"`
}

// entryValue walks mgmtResponse.statisticsDTO[0].childStatistics
// .childStatistic[0].statisticEntries.statisticEntry[0].entryValue.
func (e *statisticsEnvelope) entryValue() (string, bool) {
	if e.MgmtResponse == nil {
		return "", false
	}

	dto, ok := e.MgmtResponse.StatisticsDTO.first()
	if !ok || dto.ChildStatistics == nil {
		return "", false
	}

	child, ok := dto.ChildStatistics.ChildStatistic.first()
	if !ok || child.StatisticEntries == nil {
		return "", false
	}

	entry, ok := child.StatisticEntries.StatisticEntry.first()
	if !ok {
		return "", false
	}

	return entry.EntryValue.raw()
}
