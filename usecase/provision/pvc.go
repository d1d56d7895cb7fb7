package provision

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

// buildClaim assembles the shared volume claim of a namespace.
func (u *UseCase) buildClaim(namespace, ownerID string) *corev1.PersistentVolumeClaim {
	pvc := &corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      u.Settings.PVCName,
			Namespace: namespace,
			Labels:    storageLabels(ownerID),
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{u.Settings.PVCAccessMode},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: u.Settings.PVCQuantity,
				},
			},
		},
	}
	if u.Settings.StorageClass != "" {
		pvc.Spec.StorageClassName = ptr.To(u.Settings.StorageClass)
	}
	return pvc
}

// ensureClaim makes sure the shared claim exists. Reports whether this call
// created it.
func (u *UseCase) ensureClaim(ctx context.Context, namespace, ownerID string) (bool, error) {
	return u.Kube.EnsurePersistentVolumeClaim(ctx, u.buildClaim(namespace, ownerID))
}
