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
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
)

const (
	baseDeviceID    = 610000
	minCPU          = 2
	maxCPU          = 95
	minMemory       = 10
	maxMemory       = 90
	utilJitter      = 5
	minUptimeMillis = int64(time.Hour / time.Millisecond)
	maxUptimeMillis = int64(400 * 24 * time.Hour / time.Millisecond)
)

// Router is one synthetic device.
type Router struct {
	ID              string
	IPAddress       string
	Name            string
	SerialNumber    string
	PartNumber      string
	SoftwareVersion string
	Location        string
	CPU             int
	Memory          int
	BootTime        time.Time
	Reachable       bool
}

// RouterGenerator holds the synthetic fleet and serves concurrent readers.
type RouterGenerator struct {
	mu      sync.RWMutex
	rngMu   sync.Mutex
	rng     *rand.Rand
	routers []Router
	byID    map[string]int
	byIP    map[string]int
	missing map[string]struct{}
	listing []string
}

//nolint:gochecknoglobals // fixed catalogue
var (
	partNumbers = []string{"ISR4331/K9", "ISR4451-X/K9", "ASR1001-X", "C8300-1N1S-6T", "C1111-8P"}
	versions    = []string{"16.9.5", "16.12.4", "17.3.4a", "17.6.5", "17.9.3"}
	sites       = []string{"HQ-DC1", "Branch-North", "Branch-South", "Warehouse", "Lab"}
)

// NewRouterGenerator builds a deterministic fleet from sim.
func NewRouterGenerator(sim SimulationConfig) *RouterGenerator {
	seed := uint64(sim.Seed) //nolint:gosec // any bit pattern is a valid seed

	g := &RouterGenerator{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // test data
		routers: make([]Router, sim.TotalDevices),
		byID:    make(map[string]int, sim.TotalDevices),
		byIP:    make(map[string]int, sim.TotalDevices),
		missing: make(map[string]struct{}, sim.MissingDevices),
		listing: make([]string, 0, sim.TotalDevices+sim.MissingDevices),
	}

	now := time.Now()

	for i := range g.routers {
		id := strconv.Itoa(baseDeviceID + i)
		ip := generateSingleIP(i)
		uptime := time.Duration(g.randInt64(minUptimeMillis, maxUptimeMillis)) * time.Millisecond

		g.routers[i] = Router{
			ID:              id,
			IPAddress:       ip,
			Name:            fmt.Sprintf("rtr-%s-%03d", sites[i%len(sites)], i+1),
			SerialNumber:    fmt.Sprintf("FDO%08d", 21000000+i),
			PartNumber:      partNumbers[i%len(partNumbers)],
			SoftwareVersion: versions[i%len(versions)],
			Location:        sites[i%len(sites)],
			CPU:             g.randInt(minCPU, maxCPU),
			Memory:          g.randInt(minMemory, maxMemory),
			BootTime:        now.Add(-uptime),
			Reachable:       !isUnreachable(i, sim.UnreachablePercent),
		}

		g.byID[id] = i
		g.byIP[ip] = i
		g.listing = append(g.listing, id)
	}

	for i := 0; i < sim.MissingDevices; i++ {
		id := strconv.Itoa(baseDeviceID + sim.TotalDevices + i)
		g.missing[id] = struct{}{}
		g.listing = append(g.listing, id)
	}

	return g
}

// isUnreachable spreads floor(total*percent/100) unreachable routers evenly
// across the fleet.
func isUnreachable(index, percent int) bool {
	return (index+1)*percent/percentageBase > index*percent/percentageBase
}

// Routers returns a snapshot of the fleet.
func (g *RouterGenerator) Routers() []Router {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Router, len(g.routers))
	copy(out, g.routers)

	return out
}

// Listing returns every advertised device id, including ids with no entity.
func (g *RouterGenerator) Listing() []string {
	return append([]string(nil), g.listing...)
}

// Router looks up a device by id. missing reports an id that is listed but
// has no entity behind it.
func (g *RouterGenerator) Router(id string) (r Router, found, missing bool) {
	if _, ok := g.missing[id]; ok {
		return Router{}, false, true
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.byID[id]
	if !ok {
		return Router{}, false, false
	}

	return g.routers[i], true, false
}

// RouterByIP looks up a device by management address.
func (g *RouterGenerator) RouterByIP(ip string) (Router, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.byIP[ip]
	if !ok {
		return Router{}, false
	}

	return g.routers[i], true
}

// Sample returns a jittered utilization reading around base.
func (g *RouterGenerator) Sample(base int) int {
	v := base + g.randInt(-utilJitter, utilJitter)

	return max(0, min(percentageBase, v))
}

// Flap toggles reachability on percent of the fleet every interval until ctx
// is done.
func (g *RouterGenerator) Flap(ctx context.Context, interval time.Duration, percent int, log logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := g.flapOnce(percent)
			log.Debug().Int("routers", n).Msg("Toggled router reachability")
		}
	}
}

func (g *RouterGenerator) flapOnce(percent int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.routers) == 0 {
		return 0
	}

	n := max(1, len(g.routers)*percent/percentageBase)

	for _, i := range g.perm(len(g.routers))[:n] {
		g.routers[i].Reachable = !g.routers[i].Reachable
	}

	return n
}

// generateSingleIP maps a device index to a unique management address,
// filling 10.<site>.<subnet>.0/24 blocks and skipping .0 and .255.
func generateSingleIP(index int) string {
	const hostsPerSubnet = 254

	subnet := index / hostsPerSubnet
	host := index%hostsPerSubnet + 1

	return fmt.Sprintf("10.%d.%d.%d", subnet/256%256, subnet%256, host)
}

// randInt returns a pseudo-random integer in [minVal, maxVal].
func (g *RouterGenerator) randInt(minVal, maxVal int) int {
	if minVal >= maxVal {
		return minVal
	}

	g.rngMu.Lock()
	defer g.rngMu.Unlock()

	return minVal + g.rng.IntN(maxVal-minVal+1)
}

func (g *RouterGenerator) randInt64(minVal, maxVal int64) int64 {
	if minVal >= maxVal {
		return minVal
	}

	g.rngMu.Lock()
	defer g.rngMu.Unlock()

	return minVal + g.rng.Int64N(maxVal-minVal+1)
}

func (g *RouterGenerator) perm(n int) []int {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()

	return g.rng.Perm(n)
}
