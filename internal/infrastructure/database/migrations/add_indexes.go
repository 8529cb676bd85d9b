package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds indexes to the database to improve query performance
func AddIndexes(db *gorm.DB) error {
	// Guarantees at most one OPEN session row per session identifier:
	// the idempotent open relies on ON CONFLICT against this index
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_device_analytics_open_session
		ON device_analytics (session_id) WHERE session_end IS NULL`).Error; err != nil {
		return err
	}

	// Guarantees step numbers never duplicate within a session, even
	// under concurrent page views for the same session
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_journey_session_step
		ON user_journey_tracking (session_id, step_number)`).Error; err != nil {
		return err
	}

	// Add indexes to the sessions table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_device_analytics_session_start ON device_analytics (session_start)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_device_analytics_user_id ON device_analytics (user_id)").Error; err != nil {
		return err
	}

	// Add indexes to the behavior events table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_behavior_event_time ON user_behavior_tracking (event_time)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_behavior_session_id ON user_behavior_tracking (session_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_behavior_action_type ON user_behavior_tracking (action_type)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_behavior_user_id ON user_behavior_tracking (user_id)").Error; err != nil {
		return err
	}

	// Journey lookup of the current open step
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_journey_open_step
		ON user_journey_tracking (session_id) WHERE exited_at IS NULL`).Error; err != nil {
		return err
	}

	// Search click resolution scans (session, query, newest first)
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_search_session_query ON search_analytics (session_id, query, created_at DESC)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_search_created_at ON search_analytics (created_at)").Error; err != nil {
		return err
	}

	// Rollup read paths
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_engagement_metric_date ON user_engagement_metrics (metric_date)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_content_metric_date ON content_analytics (metric_date)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_realtime_window_end ON realtime_analytics_summary (window_minutes, window_end)").Error; err != nil {
		return err
	}

	return nil
}
