package services

// Services defined in this package:
// - AuthService: Handles authentication, token rotation and profiles
// - StudentService: Handles student admission and lookup
// - StaffService: Handles staff onboarding and lookup
// - FacultyService: Handles operations related to faculties
// - DepartmentService: Handles operations related to departments
// - CourseService: Handles the course catalog and lecturer allocations
// - TermService: Handles academic sessions and semesters
// - RegistrationService: Handles course registration and approvals
// - ResultService: Handles score entry and the verification lifecycle
// - TranscriptService: Computes GPA, CGPA and transcripts
// - MaterialService: Handles course material uploads
