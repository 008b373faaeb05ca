package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

// Materials returns a copy of every material.
func (c *Controller) Materials() []types.Material {
	out := make([]types.Material, len(c.materials))
	copy(out, c.materials)
	return out
}

// MaterialsFor returns the materials of courseID in insertion order.
func (c *Controller) MaterialsFor(courseID string) []types.Material {
	return c.filterMaterials(func(m types.Material) bool { return m.CourseID == courseID })
}

// CurrentCourseMaterials returns the materials of the current course.
func (c *Controller) CurrentCourseMaterials() []types.Material {
	if c.currentID == "" {
		return nil
	}
	return c.MaterialsFor(c.currentID)
}

// PDFMaterials returns the current course's PDFs.
func (c *Controller) PDFMaterials() []types.Material {
	return c.currentOfType(types.MaterialPDF)
}

// VideoMaterials returns the current course's videos.
func (c *Controller) VideoMaterials() []types.Material {
	return c.currentOfType(types.MaterialVideo)
}

func (c *Controller) currentOfType(t types.MaterialType) []types.Material {
	if c.currentID == "" {
		return nil
	}
	return c.filterMaterials(func(m types.Material) bool {
		return m.CourseID == c.currentID && m.Type == t
	})
}

func (c *Controller) filterMaterials(keep func(types.Material) bool) []types.Material {
	var out []types.Material
	for _, m := range c.materials {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func (c *Controller) materialIndex(id string) int {
	for i, m := range c.materials {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// DeleteMaterial removes a material and names it and its course in a
// notification.
func (c *Controller) DeleteMaterial(id string) bool {
	i := c.materialIndex(id)
	if i < 0 {
		return false
	}
	m := c.materials[i]
	c.materials = append(c.materials[:i:i], c.materials[i+1:]...)
	courseName := m.CourseID
	if co, ok := c.course(m.CourseID); ok {
		courseName = co.Name
	}
	c.log.Info("material deleted", zap.String("id", id), zap.String("course", m.CourseID))
	c.notify("Material deleted", fmt.Sprintf("%s has been removed from %s", m.Name, courseName), notify.VariantDefault)
	return true
}

// MoveMaterial reassigns a material to another existing course.
func (c *Controller) MoveMaterial(id, targetCourseID string) bool {
	i := c.materialIndex(id)
	if i < 0 {
		return false
	}
	if _, ok := c.course(targetCourseID); !ok {
		return false
	}
	c.materials[i].CourseID = targetCourseID
	return true
}

func (c *Controller) removeMaterialsOf(courseID string) int {
	kept := c.materials[:0:0]
	for _, m := range c.materials {
		if m.CourseID != courseID {
			kept = append(kept, m)
		}
	}
	n := len(c.materials) - len(kept)
	c.materials = kept
	return n
}
