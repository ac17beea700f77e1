package timeoff

import "github.com/m04kA/estimate-scheduler/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
