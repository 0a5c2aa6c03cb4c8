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

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	srvhttp "github.com/carverauto/routerpoller/pkg/http"
	"github.com/carverauto/routerpoller/pkg/logger"
)

const (
	jsonSuffix       = ".json"
	cpuTrendFile     = "cpuUtilTrend.json"
	memoryTrendFile  = "memoryUtilTrend.json"
	statisticsPeriod = 15 * time.Minute
)

type entityRefDTO struct {
	URL string `json:"@url"`
	ID  string `json:"$"`
}

type queryResponseDTO struct {
	Type     string         `json:"@type"`
	Count    int            `json:"@count"`
	EntityID []entityRefDTO `json:"entityId,omitempty"`
	Entity   []interface{}  `json:"entity,omitempty"`
}

type queryEnvelopeDTO struct {
	QueryResponse queryResponseDTO `json:"queryResponse"`
}

type devicesEntityDTO struct {
	DTOType    string     `json:"@dtoType"`
	Type       string     `json:"@type"`
	URL        string     `json:"@url"`
	DevicesDTO devicesDTO `json:"devicesDTO"`
}

type devicesDTO struct {
	ID                  string                 `json:"@id"`
	CollectionStatus    string                 `json:"collectionStatus"`
	CollectionTime      string                 `json:"collectionTime"`
	DeviceName          string                 `json:"deviceName"`
	IPAddress           string                 `json:"ipAddress"`
	Location            string                 `json:"location"`
	ManufacturerPartNrs manufacturerPartNrsDTO `json:"manufacturerPartNrs"`
	Reachability        string                 `json:"reachability"`
	SoftwareVersion     string                 `json:"softwareVersion"`
}

type manufacturerPartNrsDTO struct {
	ManufacturerPartNr []manufacturerPartNrDTO `json:"manufacturerPartNr"`
}

type manufacturerPartNrDTO struct {
	PartNumber   string `json:"partNumber"`
	SerialNumber string `json:"serialNumber"`
}

type inventoryEntityDTO struct {
	DTOType             string `json:"@dtoType"`
	InventoryDetailsDTO struct {
		Summary struct {
			DeviceName string `json:"deviceName"`
			IPAddress  string `json:"ipAddress"`
			UpTime     int64  `json:"upTime"`
		} `json:"summary"`
	} `json:"inventoryDetailsDTO"`
}

type statisticEntryDTO struct {
	EntryTime  int64  `json:"entryTime"`
	EntryValue string `json:"entryValue"`
}

type mgmtResponseDTO struct {
	RequestURL    string          `json:"@requestUrl"`
	StatisticsDTO []statisticsDTO `json:"statisticsDTO,omitempty"`
}

type statisticsDTO struct {
	ChildStatistics struct {
		ChildStatistic []childStatisticDTO `json:"childStatistic"`
	} `json:"childStatistics"`
}

type childStatisticDTO struct {
	StatisticEntries struct {
		StatisticEntry []statisticEntryDTO `json:"statisticEntry"`
	} `json:"statisticEntries"`
}

type statisticsEnvelopeDTO struct {
	MgmtResponse mgmtResponseDTO `json:"mgmtResponse"`
}

type handler struct {
	base   string
	gen    *RouterGenerator
	logger logger.Logger
}

// newHandler routes the Prime resources under cfg.Server.BasePath behind
// basic authentication.
func newHandler(cfg *Config, gen *RouterGenerator, log logger.Logger) http.Handler {
	h := &handler{base: cfg.Server.BasePath, gen: gen, logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+h.base+"data/Devices.json", h.devices)
	mux.HandleFunc("GET "+h.base+"data/Devices/{file}", h.deviceDetail)
	mux.HandleFunc("GET "+h.base+"data/InventoryDetails/{file}", h.inventory)
	mux.HandleFunc("GET "+h.base+"op/statisticsService/device/{file}", h.statistics)

	auth := srvhttp.BasicAuthMiddleware(srvhttp.BasicAuthOptions{
		Username:        cfg.Auth.Username,
		Password:        cfg.Auth.Password,
		LogUnauthorized: true,
		Logger:          log,
	})

	return srvhttp.RequestLogMiddleware(log)(auth(mux))
}

func (h *handler) selfURL(r *http.Request, resource, id string) string {
	return fmt.Sprintf("http://%s%sdata/%s/%s", r.Host, h.base, resource, id)
}

func (h *handler) devices(w http.ResponseWriter, r *http.Request) {
	ids := h.gen.Listing()
	refs := make([]entityRefDTO, len(ids))

	for i, id := range ids {
		refs[i] = entityRefDTO{URL: h.selfURL(r, "Devices", id), ID: id}
	}

	h.writeJSON(w, queryEnvelopeDTO{QueryResponse: queryResponseDTO{
		Type:     "Devices",
		Count:    len(refs),
		EntityID: refs,
	}})
}

// lookup resolves the {file} path value. It writes the response and returns
// false for unknown ids, and for listed ids without an entity.
func (h *handler) lookup(w http.ResponseWriter, r *http.Request, resource string) (Router, bool) {
	id, ok := strings.CutSuffix(r.PathValue("file"), jsonSuffix)
	if !ok || id == "" {
		http.NotFound(w, r)
		return Router{}, false
	}

	router, found, missing := h.gen.Router(id)

	switch {
	case missing:
		h.writeJSON(w, queryEnvelopeDTO{QueryResponse: queryResponseDTO{Type: resource}})
		return Router{}, false
	case !found:
		http.NotFound(w, r)
		return Router{}, false
	}

	return router, true
}

func (h *handler) deviceDetail(w http.ResponseWriter, r *http.Request) {
	router, ok := h.lookup(w, r, "Devices")
	if !ok {
		return
	}

	status, reachability := "Completed", "REACHABLE"
	if !router.Reachable {
		status, reachability = "Ping Unreachable", "UNREACHABLE"
	}

	entity := devicesEntityDTO{
		DTOType: "devicesDTO",
		Type:    "Devices",
		URL:     h.selfURL(r, "Devices", router.ID),
		DevicesDTO: devicesDTO{
			ID:               router.ID,
			CollectionStatus: status,
			CollectionTime:   time.Now().UTC().Format(time.RFC3339),
			DeviceName:       router.Name,
			IPAddress:        router.IPAddress,
			Location:         router.Location,
			ManufacturerPartNrs: manufacturerPartNrsDTO{
				ManufacturerPartNr: []manufacturerPartNrDTO{{
					PartNumber:   router.PartNumber,
					SerialNumber: router.SerialNumber,
				}},
			},
			Reachability:    reachability,
			SoftwareVersion: router.SoftwareVersion,
		},
	}

	h.writeJSON(w, queryEnvelopeDTO{QueryResponse: queryResponseDTO{
		Type:   "Devices",
		Count:  1,
		Entity: []interface{}{entity},
	}})
}

func (h *handler) inventory(w http.ResponseWriter, r *http.Request) {
	router, ok := h.lookup(w, r, "InventoryDetails")
	if !ok {
		return
	}

	var entity inventoryEntityDTO

	entity.DTOType = "inventoryDetailsDTO"
	entity.InventoryDetailsDTO.Summary.DeviceName = router.Name
	entity.InventoryDetailsDTO.Summary.IPAddress = router.IPAddress
	entity.InventoryDetailsDTO.Summary.UpTime = time.Since(router.BootTime).Milliseconds()

	h.writeJSON(w, queryEnvelopeDTO{QueryResponse: queryResponseDTO{
		Type:   "InventoryDetails",
		Count:  1,
		Entity: []interface{}{entity},
	}})
}

// statistics answers the utilization trend operations. Unreachable routers
// get a response without any statisticsDTO.
func (h *handler) statistics(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	if file != cpuTrendFile && file != memoryTrendFile {
		http.NotFound(w, r)
		return
	}

	router, ok := h.gen.RouterByIP(r.URL.Query().Get("ipAddress"))
	if !ok {
		http.Error(w, "unknown ipAddress", http.StatusBadRequest)
		return
	}

	env := statisticsEnvelopeDTO{MgmtResponse: mgmtResponseDTO{RequestURL: r.URL.String()}}

	if router.Reachable {
		var value string

		if file == cpuTrendFile {
			value = fmt.Sprintf("%d", h.gen.Sample(router.CPU))
		} else {
			value = fmt.Sprintf("Memory: %d", h.gen.Sample(router.Memory))
		}

		var child childStatisticDTO

		now := time.Now()
		child.StatisticEntries.StatisticEntry = []statisticEntryDTO{
			{EntryTime: now.UnixMilli(), EntryValue: value},
			{EntryTime: now.Add(-statisticsPeriod).UnixMilli(), EntryValue: value},
		}

		var dto statisticsDTO

		dto.ChildStatistics.ChildStatistic = []childStatisticDTO{child}
		env.MgmtResponse.StatisticsDTO = []statisticsDTO{dto}
	}

	h.writeJSON(w, env)
}

func (h *handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Error encoding response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
