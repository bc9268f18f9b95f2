package filter

import (
	"talenthub-backend/internal/domain"
)

// Facet dimension names shared by the job and applicant views.
const (
	FacetCompany  = "company"
	FacetPosition = "position"
)

// Jobs matches the admin job table: free text over position, client,
// location, each tech stack entry and domain; company facet upstream of
// position.
func Jobs() Spec[domain.Job] {
	return Spec[domain.Job]{
		SearchFields: func(j domain.Job) []string {
			fields := []string{j.PositionName, j.ClientName, j.Location, j.Domain}
			return append(fields, j.TechStack...)
		},
		FacetValue: func(j domain.Job, name string) string {
			switch name {
			case FacetCompany:
				return j.ClientName
			case FacetPosition:
				return j.PositionName
			}
			return ""
		},
		FacetOrder: []string{FacetCompany, FacetPosition},
	}
}

// Users matches the admin user table: free text over name and email, no
// facets.
func Users() Spec[domain.User] {
	return Spec[domain.User]{
		SearchFields: func(u domain.User) []string {
			return []string{u.Name, u.Email}
		},
		FacetValue: func(domain.User, string) string { return "" },
	}
}

// Applications matches the admin applicants table: free text over the
// joined job and candidate fields, company facet upstream of position.
func Applications() Spec[domain.ApplicationWithDetails] {
	return Spec[domain.ApplicationWithDetails]{
		SearchFields: func(a domain.ApplicationWithDetails) []string {
			return []string{a.PositionName, a.ClientName, a.UserName, a.UserEmail}
		},
		FacetValue: func(a domain.ApplicationWithDetails, name string) string {
			switch name {
			case FacetCompany:
				return a.ClientName
			case FacetPosition:
				return a.PositionName
			}
			return ""
		},
		FacetOrder: []string{FacetCompany, FacetPosition},
	}
}
