package clawlaunch

import (
	"encoding/json"
)

func (s *ClawLaunch) runJobs() {
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.updateChainState)
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.updateBoard)
	if s.twitterCli != nil {
		s.scheduler.Every(5).Minute().SingletonMode().Do(s.scanJob)
	}

	s.scheduler.StartAsync()
}

func (s *ClawLaunch) updateChainState() {
	if _, err := s.refreshChainState(); err != nil {
		log.Warn("refresh chain state failed", "err", err)
	}
}

func (s *ClawLaunch) updateBoard() {
	recs, err := s.wdb.GetAllLaunches()
	if err != nil {
		log.Warn("refresh launch board failed", "err", err)
		return
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := s.cache.SetBoard(data); err != nil {
		log.Warn("cache board failed", "err", err)
	}
}

func (s *ClawLaunch) scanJob() {
	resp, err := s.runScan()
	if err != nil {
		log.Error("scan mentions failed", "err", err)
		return
	}
	if resp.MentionsFound > 0 {
		log.Info("scan cycle done", "mentions", resp.MentionsFound, "launched", resp.Launched,
			"failed", resp.Failed, "skipped", resp.Skipped)
	}
}
