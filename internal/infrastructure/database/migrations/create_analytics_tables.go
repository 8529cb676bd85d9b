package migrations

import (
	"gorm.io/gorm"
)

// Migrate creates the analytics fact and rollup tables if they don't exist
func Migrate(db *gorm.DB) error {
	// Sessions table (one open row per session_id, see AddIndexes)
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS device_analytics (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		user_id TEXT,
		device_type TEXT NOT NULL DEFAULT '',
		os TEXT NOT NULL DEFAULT '',
		browser TEXT NOT NULL DEFAULT '',
		browser_version TEXT NOT NULL DEFAULT '',
		is_mobile BOOLEAN NOT NULL DEFAULT FALSE,
		is_touch BOOLEAN NOT NULL DEFAULT FALSE,
		ip_address TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		is_internal BOOLEAN NOT NULL DEFAULT FALSE,
		session_start TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		session_end TIMESTAMPTZ,
		duration_seconds INTEGER
	)`).Error; err != nil {
		return err
	}

	// Behavior events (append-only facts)
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS user_behavior_tracking (
		event_id UUID PRIMARY KEY,
		session_id TEXT NOT NULL,
		user_id TEXT,
		action_type TEXT NOT NULL,
		page_url TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT '',
		action_data JSONB,
		device_type TEXT NOT NULL DEFAULT '',
		browser TEXT NOT NULL DEFAULT '',
		time_spent INTEGER,
		event_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`).Error; err != nil {
		return err
	}

	// Journey steps (one open step per session, strictly increasing step_number)
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS user_journey_tracking (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		user_id TEXT,
		step_number INTEGER NOT NULL,
		page_url TEXT NOT NULL,
		page_title TEXT NOT NULL DEFAULT '',
		entered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		exited_at TIMESTAMPTZ,
		time_spent_seconds INTEGER,
		next_page_url TEXT,
		exit_method TEXT
	)`).Error; err != nil {
		return err
	}

	// Search queries with eventual click outcome
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS search_analytics (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		user_id TEXT,
		query TEXT NOT NULL,
		search_type TEXT NOT NULL DEFAULT 'global',
		result_count INTEGER NOT NULL DEFAULT 0,
		search_time_ms INTEGER,
		clicked_position INTEGER,
		clicked_result_id TEXT,
		clicked_result_type TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`).Error; err != nil {
		return err
	}

	// Per-user daily rollup (additive upsert target)
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS user_engagement_metrics (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		metric_date DATE NOT NULL,
		sessions_count INTEGER NOT NULL DEFAULT 0,
		page_views INTEGER NOT NULL DEFAULT 0,
		actions_performed INTEGER NOT NULL DEFAULT 0,
		content_consumed INTEGER NOT NULL DEFAULT 0,
		events_registered INTEGER NOT NULL DEFAULT 0,
		search_queries INTEGER NOT NULL DEFAULT 0,
		downloads INTEGER NOT NULL DEFAULT 0,
		social_shares INTEGER NOT NULL DEFAULT 0,
		engagement_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_user_engagement_user_date UNIQUE (user_id, metric_date)
	)`).Error; err != nil {
		return err
	}

	// Per-content daily rollup (additive upsert target)
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS content_analytics (
		id BIGSERIAL PRIMARY KEY,
		content_type TEXT NOT NULL,
		content_id BIGINT NOT NULL,
		metric_date DATE NOT NULL,
		views INTEGER NOT NULL DEFAULT 0,
		unique_viewers INTEGER NOT NULL DEFAULT 0,
		time_spent_total INTEGER NOT NULL DEFAULT 0,
		avg_time_spent DOUBLE PRECISION NOT NULL DEFAULT 0,
		shares INTEGER NOT NULL DEFAULT 0,
		downloads INTEGER NOT NULL DEFAULT 0,
		engagement_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_content_analytics_key UNIQUE (content_type, content_id, metric_date)
	)`).Error; err != nil {
		return err
	}

	// Sliding-window counters for the realtime dashboards
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS realtime_analytics_summary (
		id BIGSERIAL PRIMARY KEY,
		metric_name TEXT NOT NULL,
		window_minutes INTEGER NOT NULL,
		window_start TIMESTAMPTZ NOT NULL,
		window_end TIMESTAMPTZ NOT NULL,
		metric_value BIGINT NOT NULL DEFAULT 0,
		CONSTRAINT uq_realtime_summary_key UNIQUE (metric_name, window_minutes, window_start)
	)`).Error; err != nil {
		return err
	}

	// Minimal content catalog used for title joins in the reports
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS contents (
		id BIGSERIAL PRIMARY KEY,
		content_type TEXT NOT NULL DEFAULT 'news',
		title TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`).Error; err != nil {
		return err
	}

	return nil
}
