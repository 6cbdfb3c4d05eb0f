package config

import "strings"

// Default schedules for the built-in cron jobs.
var CronSchedules = map[string]string{
	"catalogrefresh": "@every 10m",
}

// CronSchedule returns CRON_<NAME> when set, else def, else the built-in
// default for name.
func CronSchedule(name, def string) string {
	if def == "" {
		def = CronSchedules[name]
	}
	return GetEnv("CRON_"+strings.ToUpper(name), def)
}
