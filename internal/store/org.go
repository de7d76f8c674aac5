package store

import "slices"

// TeamNode is a person in the reporting tree, parented by ManagerID.
type TeamNode struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name" validate:"required" label:"Name"`
	Role       string `json:"role" yaml:"role" validate:"required" label:"Role"`
	Department string `json:"department" yaml:"department" validate:"required" label:"Department"`
	ManagerID  string `json:"managerId,omitempty" yaml:"managerId,omitempty"`
	Avatar     string `json:"avatar" yaml:"avatar"`
	Email      string `json:"email" yaml:"email" validate:"required,mailbox" label:"Email"`
	JoinDate   string `json:"joinDate" yaml:"joinDate" validate:"omitempty,isodate" label:"Join Date"`
}

func (n TeamNode) NodeID() string       { return n.ID }
func (n TeamNode) ParentNodeID() string { return n.ManagerID }
func (n TeamNode) PaletteKey() string   { return n.Department }

// JobNode is a position in the job ladder, parented by ParentJobID.
type JobNode struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title" validate:"required" label:"Title"`
	Department       string   `json:"department" yaml:"department" validate:"required" label:"Department"`
	Level            string   `json:"level" yaml:"level" validate:"required" label:"Level"`
	ParentJobID      string   `json:"parentJobId,omitempty" yaml:"parentJobId,omitempty"`
	Requirements     []string `json:"requirements" yaml:"requirements"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
	Salary           float64  `json:"salary" yaml:"salary" validate:"gte=0" label:"Salary"`
	OpenPositions    int      `json:"openPositions" yaml:"openPositions" validate:"gte=0" label:"Open Positions"`
}

func (n JobNode) NodeID() string       { return n.ID }
func (n JobNode) ParentNodeID() string { return n.ParentJobID }
func (n JobNode) PaletteKey() string   { return n.Level }

// FormNode is an entry in the form catalogue tree, parented by ParentFormID.
type FormNode struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title" validate:"required" label:"Title"`
	Category     string `json:"category" yaml:"category" validate:"required" label:"Category"`
	ParentFormID string `json:"parentFormId,omitempty" yaml:"parentFormId,omitempty"`
	Fields       int    `json:"fields" yaml:"fields" validate:"gte=0" label:"Fields"`
	Submissions  int    `json:"submissions" yaml:"submissions" validate:"gte=0" label:"Submissions"`
	CreatedAt    string `json:"createdAt" yaml:"createdAt"`
	Status       string `json:"status" yaml:"status" validate:"required,oneof=active draft archived" label:"Status"`
}

func (n FormNode) NodeID() string       { return n.ID }
func (n FormNode) ParentNodeID() string { return n.ParentFormID }
func (n FormNode) PaletteKey() string   { return n.Category }

func (n TeamNode) clone() TeamNode { return n }

func (n JobNode) clone() JobNode {
	n.Requirements = slices.Clone(n.Requirements)
	n.Responsibilities = slices.Clone(n.Responsibilities)
	return n
}

func (n FormNode) clone() FormNode { return n }

// Teams returns the reporting tree nodes.
func (s *Store) Teams() []TeamNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.teams, TeamNode.clone)
}

// Jobs returns the job ladder nodes.
func (s *Store) Jobs() []JobNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.jobs, JobNode.clone)
}

// FormNodes returns the form catalogue nodes.
func (s *Store) FormNodes() []FormNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.formTree, FormNode.clone)
}

// AddTeamMember appends n under a fresh team- id.
func (s *Store) AddTeamMember(n TeamNode) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID(PrefixTeam)
	s.teams = append(s.teams, n)
	return n.ID
}

// AddJob appends n under a fresh job- id.
func (s *Store) AddJob(n JobNode) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n = n.clone()
	n.ID = s.nextID(PrefixJob)
	s.jobs = append(s.jobs, n)
	return n.ID
}

// AddFormNode appends n under a fresh form- id.
func (s *Store) AddFormNode(n FormNode) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID(PrefixFormNode)
	s.formTree = append(s.formTree, n)
	return n.ID
}

// SetTeams replaces the whole reporting tree.
func (s *Store) SetTeams(ns []TeamNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = cloneAll(ns, TeamNode.clone)
}

// SetJobs replaces the whole job ladder.
func (s *Store) SetJobs(ns []JobNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = cloneAll(ns, JobNode.clone)
}

// SetFormNodes replaces the whole form catalogue.
func (s *Store) SetFormNodes(ns []FormNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formTree = cloneAll(ns, FormNode.clone)
}
