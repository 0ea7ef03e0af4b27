package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/controllers"
	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/middleware"
)

// Controllers bundles every controller the router wires up
type Controllers struct {
	Auth         *controllers.AuthController
	Faculty      *controllers.FacultyController
	Department   *controllers.DepartmentController
	Term         *controllers.TermController
	Course       *controllers.CourseController
	Student      *controllers.StudentController
	Staff        *controllers.StaffController
	Registration *controllers.RegistrationController
	Result       *controllers.ResultController
	Attendance   *controllers.AttendanceController
	Transcript   *controllers.TranscriptController
	Material     *controllers.MaterialController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	admin := string(models.RoleAdmin)
	staff := string(models.RoleStaff)
	student := string(models.RoleStudent)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh-token", c.Auth.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authProtected := authenticated.Group("/auth")
		{
			authProtected.POST("/logout", c.Auth.Logout)
			authProtected.POST("/change-password", c.Auth.ChangePassword)
			authProtected.GET("/profile", c.Auth.GetProfile)
		}

		// Faculty routes: reads for everyone, writes admin-only
		faculties := authenticated.Group("/faculties")
		{
			faculties.GET("", c.Faculty.GetAllFaculties)
			faculties.GET("/:id", c.Faculty.GetFacultyByID)
			faculties.GET("/:id/departments", c.Department.GetDepartmentsByFacultyID)

			facultiesAdmin := faculties.Group("")
			facultiesAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				facultiesAdmin.POST("", c.Faculty.CreateFaculty)
				facultiesAdmin.PUT("/:id", c.Faculty.UpdateFaculty)
				facultiesAdmin.DELETE("/:id", c.Faculty.DeleteFaculty)
			}
		}

		// Department routes
		departments := authenticated.Group("/departments")
		{
			departments.GET("", c.Department.GetAllDepartments)
			departments.GET("/:id", c.Department.GetDepartmentByID)

			departmentsAdmin := departments.Group("")
			departmentsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				departmentsAdmin.POST("", c.Department.CreateDepartment)
				departmentsAdmin.PUT("/:id", c.Department.UpdateDepartment)
				departmentsAdmin.DELETE("/:id", c.Department.DeleteDepartment)
			}
		}

		// Academic calendar routes
		sessions := authenticated.Group("/sessions")
		{
			sessions.GET("", c.Term.ListSessions)
			sessions.GET("/:id", c.Term.GetSession)

			sessionsAdmin := sessions.Group("")
			sessionsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				sessionsAdmin.POST("", c.Term.CreateSession)
				sessionsAdmin.POST("/:id/activate", c.Term.ActivateSession)
			}
		}

		semesters := authenticated.Group("/semesters")
		{
			semesters.GET("", c.Term.ListSemesters)
			semesters.GET("/:id", c.Term.GetSemester)

			semestersAdmin := semesters.Group("")
			semestersAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				semestersAdmin.POST("", c.Term.CreateSemester)
				semestersAdmin.POST("/:id/activate", c.Term.ActivateSemester)
			}
		}

		authenticated.GET("/terms/active", c.Term.GetActiveTerm)

		// Course catalog routes
		courses := authenticated.Group("/courses")
		{
			courses.GET("", c.Course.ListCourses)
			courses.GET("/:id", c.Course.GetCourse)
			courses.GET("/:id/materials", c.Material.ListMaterials)

			coursesStaff := courses.Group("")
			coursesStaff.Use(authMiddleware.RoleRequired(admin, staff))
			{
				coursesStaff.GET("/:id/roster", c.Registration.GetRoster)
				coursesStaff.POST("/:id/materials", c.Material.UploadMaterial)
			}

			coursesAdmin := courses.Group("")
			coursesAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				coursesAdmin.POST("", c.Course.CreateCourse)
				coursesAdmin.PUT("/:id", c.Course.UpdateCourse)
				coursesAdmin.DELETE("/:id", c.Course.DeleteCourse)
			}
		}

		// Course material routes
		materials := authenticated.Group("/materials")
		{
			materials.GET("/:id/download", c.Material.DownloadMaterial)

			materialsStaff := materials.Group("")
			materialsStaff.Use(authMiddleware.RoleRequired(admin, staff))
			{
				materialsStaff.DELETE("/:id", c.Material.DeleteMaterial)
			}
		}

		// Allocation routes
		allocations := authenticated.Group("/allocations")
		{
			allocationsStaff := allocations.Group("")
			allocationsStaff.Use(authMiddleware.RoleRequired(admin, staff))
			{
				allocationsStaff.GET("/mine", c.Course.ListMyCourses)
				allocationsStaff.GET("/:id/attendance", c.Attendance.ListSessions)
			}

			allocationsAdmin := allocations.Group("")
			allocationsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				allocationsAdmin.POST("", c.Course.AllocateCourse)
				allocationsAdmin.DELETE("/:id", c.Course.RemoveAllocation)
			}
		}

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("/:id/gpa", c.Transcript.GetGPA)
			students.GET("/:id/cgpa", c.Transcript.GetCGPA)
			students.GET("/:id/transcript", c.Transcript.GetTranscript)

			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(admin, staff))
			{
				studentsStaff.GET("", c.Student.ListStudents)
				studentsStaff.GET("/:id", c.Student.GetStudent)
			}

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				studentsAdmin.POST("", c.Student.AdmitStudent)
				studentsAdmin.PATCH("/:id/level", c.Student.UpdateStudentLevel)
				studentsAdmin.PATCH("/:id/status", c.Student.UpdateStudentStatus)
			}
		}

		// Staff routes (admin only)
		staffGroup := authenticated.Group("/staff")
		staffGroup.Use(authMiddleware.RoleRequired(admin))
		{
			staffGroup.POST("", c.Staff.CreateStaff)
			staffGroup.GET("", c.Staff.ListStaff)
			staffGroup.GET("/:id", c.Staff.GetStaff)
		}

		// Registration routes
		registrations := authenticated.Group("/registrations")
		{
			registrationsStudent := registrations.Group("")
			registrationsStudent.Use(authMiddleware.RoleRequired(student))
			{
				registrationsStudent.POST("", c.Registration.RegisterCourses)
				registrationsStudent.GET("/mine", c.Registration.ListMyRegistrations)
			}

			registrationsAdmin := registrations.Group("")
			registrationsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				registrationsAdmin.GET("/pending", c.Registration.ListPendingRegistrations)
				registrationsAdmin.POST("/:id/approve", c.Registration.ApproveRegistration)
				registrationsAdmin.POST("/:id/reject", c.Registration.RejectRegistration)
			}
		}

		// Attendance routes (lecturers mark their own classes)
		attendance := authenticated.Group("/attendance")
		attendance.Use(authMiddleware.RoleRequired(admin, staff))
		{
			attendance.POST("", c.Attendance.OpenSession)
			attendance.GET("/:id", c.Attendance.GetSession)
			attendance.POST("/:id/records", c.Attendance.MarkAttendance)
		}

		// Result routes. Lecturers enter and submit scores; admins run the
		// verification queue.
		results := authenticated.Group("/results")
		{
			resultsStaff := results.Group("")
			resultsStaff.Use(authMiddleware.RoleRequired(admin, staff))
			{
				resultsStaff.POST("/scores", c.Result.UpsertScore)
				resultsStaff.POST("/submit", c.Result.SubmitResults)
				resultsStaff.GET("/:id", c.Result.GetResult)
			}

			resultsAdmin := results.Group("")
			resultsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				resultsAdmin.GET("", c.Result.ListResults)
				resultsAdmin.POST("/:id/verify", c.Result.VerifyResult)
				resultsAdmin.POST("/:id/reject", c.Result.RejectResult)
				resultsAdmin.POST("/bulk-verify", c.Result.BulkVerify)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
