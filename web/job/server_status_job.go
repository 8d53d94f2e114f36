// Package job contains the scheduled background jobs run by the web server.
package job

import (
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/util/common"
	"github.com/yukkurinet/hyakki-portal/web/service"
)

// ServerStatusJob periodically refreshes the simulated player count so the
// status stays lively between page loads.
type ServerStatusJob struct {
	statusService service.ServerStatusService
}

func NewServerStatusJob() *ServerStatusJob {
	return &ServerStatusJob{}
}

// Run is invoked by the cron scheduler. A panic here must not take the
// scheduler down with it.
func (j *ServerStatusJob) Run() {
	defer common.Recover("server status refresh")

	if _, err := j.statusService.RandomizePlayers(); err != nil {
		logger.Warning("server status refresh failed:", err)
	}
}
