package authroles

import (
	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
)

// StaticRoleMapper maps provider groups to SureSight roles by simple string
// membership rules. Group names come from configuration so each deployment can
// bind its own directory groups.
type StaticRoleMapper struct {
	AdminGroup      string
	AdjusterGroup   string
	ContractorGroup string
	HomeownerGroup  string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	rules := []struct {
		group string
		role  domainauth.Role
	}{
		{m.AdminGroup, domainauth.RoleAdmin},
		{m.AdjusterGroup, domainauth.RoleAdjuster},
		{m.ContractorGroup, domainauth.RoleContractor},
		{m.HomeownerGroup, domainauth.RoleHomeowner},
	}
	for _, rule := range rules {
		if rule.group == "" {
			continue
		}
		for _, g := range groups {
			if g == rule.group {
				return rule.role
			}
		}
	}
	return domainauth.RoleUnknown
}
