package enum

type Role string

const (
	RoleClient    Role = "client"
	RoleJobSeeker Role = "job_seeker"
)

// ParseRole maps wire spellings onto a Role; "job-seeker" and "job_seeker"
// are both accepted.
func ParseRole(s string) Role {
	switch s {
	case "job-seeker", "job_seeker", "jobSeeker":
		return RoleJobSeeker
	default:
		return RoleClient
	}
}
