package models

// ProjectChoices lists the values the project form offers for its enumerated fields.
type ProjectChoices struct {
	EmploymentTypes []string `json:"employmentTypes"`
	Territories     []string `json:"territories"`
	Campuses        []string `json:"campuses"`
	ProjectTypes    []string `json:"projectTypes"`
}

var DefaultProjectChoices = ProjectChoices{
	EmploymentTypes: []string{"Full-time", "Part-time", "Flexible", "Internship"},
	Territories:     []string{"On campus", "Remote", "Hybrid"},
	Campuses:        []string{"Moscow", "Saint Petersburg", "Nizhny Novgorod", "Perm"},
	ProjectTypes:    []string{"Research", "Applied", "Startup", "Service", "Event"},
}

// ReferenceCategories are seeded as the non-custom category list.
var ReferenceCategories = []string{
	"Software Development",
	"Data Science",
	"Design",
	"Marketing",
	"Research",
	"Education",
	"Finance",
	"Media",
	"Social Impact",
	"Hardware",
}

// ReferenceFaculties are seeded into the faculties table.
var ReferenceFaculties = []string{
	"Computer Science",
	"Economic Sciences",
	"Law",
	"Humanities",
	"Communications, Media and Design",
	"Mathematics",
	"Physics",
	"Business and Management",
	"Social Sciences",
}
