package store

import "slices"

// Departments accepted on an employee record.
var Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Operations"}

// Employee is a record in the record manager.
type Employee struct {
	ID         string  `json:"id" yaml:"id"`
	FirstName  string  `json:"firstName" yaml:"firstName" validate:"required" label:"First Name"`
	LastName   string  `json:"lastName" yaml:"lastName" validate:"required" label:"Last Name"`
	Email      string  `json:"email" yaml:"email" validate:"required,mailbox" label:"Email"`
	Phone      string  `json:"phone,omitempty" yaml:"phone,omitempty" label:"Phone"`
	Department string  `json:"department" yaml:"department" validate:"required,oneof=Engineering Marketing Sales HR Finance Operations" label:"Department"`
	Salary     float64 `json:"salary" yaml:"salary" validate:"gte=0" label:"Salary"`
	StartDate  string  `json:"startDate" yaml:"startDate" validate:"required,isodate" label:"Start Date"`
}

func (e Employee) clone() Employee { return e }

// Records returns every employee record in insertion order.
func (s *Store) Records() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.records, Employee.clone)
}

// Record returns the record with id.
func (s *Store) Record(id string) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.records, func(e Employee) bool { return e.ID == id })
	if i < 0 {
		return Employee{}, false
	}
	return s.records[i], true
}

// AddRecord appends e under a fresh id and returns that id.
func (s *Store) AddRecord(e Employee) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID("")
	s.records = append(s.records, e)
	return e.ID
}

// UpdateRecord replaces the record with e.ID. It reports false if no such
// record exists.
func (s *Store) UpdateRecord(e Employee) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.records, func(r Employee) bool { return r.ID == e.ID })
	if i < 0 {
		return false
	}
	s.records[i] = e
	return true
}

// DeleteRecord removes the record with id.
func (s *Store) DeleteRecord(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.records, ok = removeWhere(s.records, func(e Employee) bool { return e.ID == id })
	return ok
}

// IsDepartment reports whether d is one of Departments.
func IsDepartment(d string) bool {
	return slices.Contains(Departments, d)
}
