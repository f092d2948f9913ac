package filter

// CommonRoles are the title keywords counted in run summaries.
var CommonRoles = []string{"Data", "Engineer", "Developer", "Manager", "Analyst", "Sales", "Marketing"}
