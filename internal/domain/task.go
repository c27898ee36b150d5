package domain

// 维修工单和物业服务单由其他子系统管理，这里只引用它们的 ID
// 并回写 assigned_to / status 两个字段。

type TaskType string

const (
	TaskTypeMaintenance TaskType = "maintenance_task"
	TaskTypeJobService  TaskType = "job_service"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)
