package provision

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/satchelworks/satchelops/internal/naming"
)

// buildPod assembles the storage pod. The container name carries a random
// suffix so restarts after a failed provisioning never collide on names
// recorded by admission webhooks.
func (u *UseCase) buildPod(namespace, ownerID string) (*corev1.Pod, error) {
	containerName, err := naming.UniqueName(containerNamePrefix)
	if err != nil {
		return nil, fmt.Errorf("generate container name: %w", err)
	}
	pod := &corev1.Pod{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Pod"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      StorageResourceName,
			Namespace: namespace,
			Labels:    storageLabels(ownerID),
		},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{
					Name:            containerName,
					Image:           u.Settings.Image,
					ImagePullPolicy: u.Settings.ImagePullPolicy,
					Ports: []corev1.ContainerPort{
						{
							Name:          SyncPortName,
							ContainerPort: SyncPort,
							Protocol:      corev1.ProtocolTCP,
						},
					},
					Resources: corev1.ResourceRequirements{
						Requests: corev1.ResourceList{
							corev1.ResourceMemory: resource.MustParse(memoryRequest),
						},
						Limits: corev1.ResourceList{
							corev1.ResourceMemory: resource.MustParse(memoryLimit),
						},
					},
					VolumeMounts: []corev1.VolumeMount{
						{
							Name:      dataVolumeName,
							MountPath: DataMountPath,
						},
						{
							Name:      configVolumeName,
							MountPath: AuthorizedKeysMountPath,
							SubPath:   AuthorizedKeysKey,
							ReadOnly:  true,
						},
					},
				},
			},
			Volumes: []corev1.Volume{
				{
					Name: dataVolumeName,
					VolumeSource: corev1.VolumeSource{
						PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
							ClaimName: u.Settings.PVCName,
						},
					},
				},
				{
					Name: configVolumeName,
					VolumeSource: corev1.VolumeSource{
						ConfigMap: &corev1.ConfigMapVolumeSource{
							LocalObjectReference: corev1.LocalObjectReference{
								Name: ConfigName(namespace),
							},
							// sshd refuses authorized_keys files readable by group or world.
							DefaultMode: ptr.To[int32](0600),
						},
					},
				},
			},
		},
	}
	return pod, nil
}

// ensurePod makes sure the storage pod exists. Reports whether this call
// created it.
func (u *UseCase) ensurePod(ctx context.Context, namespace, ownerID string) (bool, error) {
	pod, err := u.buildPod(namespace, ownerID)
	if err != nil {
		return false, err
	}
	return u.Kube.EnsurePod(ctx, pod)
}
